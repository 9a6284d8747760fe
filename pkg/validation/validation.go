// Package validation holds the syntactic checks applied to inbound form
// fields before any mail is dispatched.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the struct tag name registered for the contact-form email
// pattern. Deliberately looser than RFC 5322; it only has to reject
// obviously malformed input before we attempt to send to it.
const EmailTag = "contact_email"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// ValidEmail reports whether s matches the contact-form email pattern.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Struct validates v against its `validate` struct tags.
func Struct(v any) error {
	return validate.Struct(v)
}
