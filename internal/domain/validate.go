package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateUserInput is the request shape for registration.
type CreateUserInput struct {
	FirstName     string `json:"first_name" validate:"required,min=1,max=255"`
	LastName      string `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email         string `json:"email" validate:"required,min=5,max=255,email"`
	Password      string `json:"password" validate:"required,min=8,max=1024"`
	AccountStatus string `json:"account_status" validate:"omitempty,oneof=CREATED ACTIVE INACTIVE SUSPENDED DELETED"`
}

// LoginInput is the request shape for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// UpdateUserInput is the request shape for profile updates. Every field
// is optional; absent fields leave the stored value untouched.
type UpdateUserInput struct {
	FirstName     string `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName      string `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email         string `json:"email" validate:"omitempty,min=5,max=255,email"`
	Password      string `json:"password" validate:"omitempty,min=8,max=1024"`
	AccountStatus string `json:"account_status" validate:"omitempty,oneof=CREATED ACTIVE INACTIVE SUSPENDED DELETED"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report violations against the json field name, not the Go one
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCreate checks a registration payload and returns the first
// violation as a human-readable error.
func ValidateCreate(in CreateUserInput) error {
	return firstViolation(validate.Struct(in))
}

// ValidateLogin checks a login payload.
func ValidateLogin(in LoginInput) error {
	return firstViolation(validate.Struct(in))
}

// ValidateUpdate checks a partial update payload.
func ValidateUpdate(in UpdateUserInput) error {
	return firstViolation(validate.Struct(in))
}

func firstViolation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return errors.New(violationMessage(verrs[0]))
	}
	return err
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
