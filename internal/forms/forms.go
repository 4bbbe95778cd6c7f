// Package forms validates user-submitted form data before any network
// call is made. Validation failures surface as user-facing messages,
// mirroring the original client's inline form checks.
package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterForm is the patient sign-up form.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// LoginForm is the patient or doctor login form.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// DoctorJoinForm is the doctor registration form submitted through the
// admin endpoint. The image is mandatory.
type DoctorJoinForm struct {
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=8"`
	Speciality string `validate:"required"`
	Degree     string `validate:"required"`
	Experience string `validate:"required"`
	About      string
	Fees       string `validate:"required,numeric"`
	Address1   string `validate:"required"`
	Address2   string
	ImagePath  string `validate:"required"`
}

// Check validates v and converts the first violation into a message the
// user can act on.
func Check(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "ImagePath":
		return errors.New("please upload a doctor image")
	case fe.Tag() == "required":
		return fmt.Errorf("%s is required", fe.Field())
	case fe.Tag() == "email":
		return errors.New("please enter a valid email address")
	case fe.Tag() == "min" && fe.Field() == "Password":
		return fmt.Errorf("password must be at least %s characters", fe.Param())
	case fe.Tag() == "numeric":
		return fmt.Errorf("%s must be a number", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
