package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type registerOrderItemRequest struct {
	Description    string `json:"description" validate:"max=500"`
	Qty            int    `json:"qty" validate:"required,gt=0"`
	BlankCostCents int64  `json:"blankCostCents"`
	PrintCostCents int64  `json:"printCostCents"`
}

type registerOrderRequest struct {
	OrderID             string                     `json:"orderId" validate:"required,uuid"`
	Email               string                     `json:"email" validate:"required,email"`
	SubtotalCents       int64                      `json:"subtotalCents" validate:"gte=0"`
	ShippingCents       int64                      `json:"shippingCents" validate:"gte=0"`
	TaxCents            int64                      `json:"taxCents" validate:"gte=0"`
	TotalCents          int64                      `json:"totalCents" validate:"gte=0"`
	BasePrinterFeeCents *int64                     `json:"basePrinterFeeCents" validate:"omitempty,gte=0"`
	Items               []registerOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// orderStatusRequest is bound from the JSON body on POST and from the query string on GET.
type orderStatusRequest struct {
	OrderID        string `json:"orderId" query:"orderId" validate:"required,uuid"`
	Status         string `json:"status" query:"status" validate:"required,max=32"`
	TrackingNumber string `json:"trackingNumber" query:"trackingNumber" validate:"max=128"`
	Carrier        string `json:"carrier" query:"carrier" validate:"max=64"`
}

type orderReceivedRequest struct {
	OrderID string `json:"orderId" query:"orderId" validate:"required,uuid"`
}

type createSettlementRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1,dive,uuid"`
	Note     string   `json:"note" validate:"max=2000"`
}

type listSettlementsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

// requestValidator adapts validator/v10 to echo.Validator. Field names in errors
// follow the json tag so they match what the caller sent.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Namespace()+" "+validationMessage(fe))
	}
	return errs.NewValueIsInvalidErrorWithCause("request", errors.New(strings.Join(msgs, "; ")))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("must be %s %s", map[string]string{"gt": ">", "gte": ">="}[fe.Tag()], fe.Param())
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a UUID"
	}
	return "is invalid"
}

// bind decodes and validates the request into dest. Binding failures are validation errors.
func bind(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return errs.NewValueIsInvalidErrorWithCause("request body", fmt.Errorf("%v", httpErr.Message))
		}
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(dest)
}

func parseUUID(field, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return id, nil
}
