package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Printers land on these pages after clicking a link in an email.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{- if .Detail}}
<p><small>{{.Detail}}</small></p>
{{- end}}
</body>
</html>
`))

type page struct {
	Title   string
	Message string
	Detail  string
}

var reasonMessages = map[string]string{
	reasonUnauthorized: "This link is not authorized. Check that you used the latest email.",
	reasonNotFound:     "We could not find what this link points to.",
	reasonInvalid:      "This link is malformed.",
	reasonConflict:     "This action is no longer possible in the current state.",
	reasonError:        "Something went wrong on our side. Please try again later.",
}

var settlementFlagMessages = map[string]string{
	"agreed":        "Thanks, the settlement is marked as agreed.",
	"needs-updated": "Thanks, we will review the settlement and send an updated one.",
	"paid":          "Thanks, the settlement is marked as paid in full.",
}

func reasonMessage(reason string) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return reasonMessages[reasonError]
}

// SuccessPage godoc
// @Summary  Confirmation page for printer order links
// @Tags     pages
// @Produce  html
// @Success  200
// @Router   /printer/success [get]
func (s *Server) SuccessPage(c echo.Context) error {
	p := page{Title: "Update received", Message: "The order was updated."}
	if id, status := c.QueryParam("orderId"), c.QueryParam("status"); id != "" && status != "" {
		p.Detail = "Order " + id + " is now " + status + "."
	}
	return render(c, http.StatusOK, p)
}

// ErrorPage godoc
// @Summary  Failure page for printer links
// @Tags     pages
// @Produce  html
// @Success  200
// @Router   /printer/error [get]
func (s *Server) ErrorPage(c echo.Context) error {
	return render(c, http.StatusOK, page{Title: "Update failed", Message: reasonMessage(c.QueryParam("reason"))})
}

// SettlementsPage godoc
// @Summary  Landing page after a settlement action link
// @Tags     pages
// @Produce  html
// @Success  200
// @Router   /printer/settlements [get]
func (s *Server) SettlementsPage(c echo.Context) error {
	flag := c.QueryParam("status")
	if flag == "error" {
		return render(c, http.StatusOK, page{
			Title:   "Settlement update failed",
			Message: reasonMessage(c.QueryParam("reason")),
		})
	}

	p := page{Title: "Settlements", Message: "Your settlement responses are recorded here."}
	if msg, ok := settlementFlagMessages[flag]; ok {
		p.Message = msg
	}
	if id := c.QueryParam("settlementId"); id != "" {
		p.Detail = "Settlement " + id
	}
	return render(c, http.StatusOK, p)
}

func render(c echo.Context, status int, p page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}
