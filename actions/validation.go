package actions

import (
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/snap-species-web/internal/errors"
)

const (
	msgFillAllFields    = "Please fill in all fields."
	msgFullName         = "Please enter your full name."
	msgPasswordMismatch = "Passwords do not match."
)

// LoginForm is the login page's form.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// SignupForm is the signup page's form.
type SignupForm struct {
	Username        string `form:"username" validate:"required"`
	Name            string `form:"name" validate:"required,fullname"`
	Email           string `form:"email" validate:"required"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
}

func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return isFullName(fl.Field().String())
	})
	return validate
}

// isFullName reports whether name holds at least a first and a last name
// separated by spaces. Other whitespace does not separate names.
func isFullName(name string) bool {
	parts := 0
	for _, part := range strings.Split(strings.TrimSpace(name), " ") {
		if part != "" {
			parts++
		}
	}
	return parts >= 2
}

// validateForm checks form and reports the first failure in the order the
// pages present them: missing fields, then name, then password confirmation.
func validateForm(validate *validator.Validate, form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) {
		return apperrors.AsActionError(err)
	}

	var first *apperrors.ActionError
	rank := len(tagOrder)
	for _, fe := range fieldErrs {
		r, msg := tagRank(fe.Tag())
		if r < rank || first == nil {
			rank = r
			first = apperrors.Validation(fieldName(fe), msg)
		}
	}
	return first
}

var tagOrder = []struct {
	tag     string
	message string
}{
	{"required", msgFillAllFields},
	{"fullname", msgFullName},
	{"eqfield", msgPasswordMismatch},
}

func tagRank(tag string) (int, string) {
	for i, t := range tagOrder {
		if t.tag == tag {
			return i, t.message
		}
	}
	return len(tagOrder), msgFillAllFields
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() == "" {
		return ""
	}
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}
