package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// Email is a validated mailbox address.
type Email struct {
	address string
}

// NewEmail trims and validates an address.
func NewEmail(address string) (Email, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if err := emailValidator.Var(address, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return Email{address: strings.ToLower(address)}, nil
}

func (e Email) String() string {
	return e.address
}

func (e Email) Validate() error {
	if e.address == "" {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}

func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}
