// Package inputval validates user-supplied form input. Struct-level
// validation runs through go-playground/validator; the bareemail rule
// and the address parser behind it live here too.
package inputval

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The stock "email" rule accepts display-name forms; form fields
	// hold bare addresses only.
	if err := v.RegisterValidation("bareemail", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// CheckStruct validates a form struct against its `validate` tags.
// Returns validator.ValidationErrors on failure.
func CheckStruct(s any) error {
	return validate.Struct(s)
}

// FirstField returns the path of the first failed field relative to
// the validated struct, e.g. "Email" or "Criteria[0].MaxPoints".
// Empty when err is nil or not a validation error.
func FirstField(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ""
	}
	ns := verrs[0].StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// IsValidEmail reports whether the address parses as a bare RFC 5322
// address. Display-name forms ("Name <a@b>") are rejected; the form
// field should hold just the address.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && addr.Name == ""
}
