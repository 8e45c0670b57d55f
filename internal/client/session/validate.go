package session

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dmitrijs2005/bookit/internal/client/models"
)

const minPasswordLength = 8

var emailRule = validation.Match(regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)).Error("must be a valid email address")

type loginInput struct {
	Email    string
	Password string
}

func (in loginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, emailRule),
		validation.Field(&in.Password, validation.Required),
	)
}

type registerInput struct {
	models.RegisterPayload
}

func (in registerInput) Validate() error {
	p := in.RegisterPayload
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.Required, emailRule),
		validation.Field(&p.Password, validation.Required, validation.Length(minPasswordLength, 128)),
		validation.Field(&p.Phone, validation.Length(0, 20)),
		validation.Field(&p.UserType, validation.In(models.RoleUser, models.RoleVendor)),
	)
}

type profileInput struct {
	models.ProfilePatch
}

func (in profileInput) Validate() error {
	if in.IsEmpty() {
		return errors.New("nothing to update")
	}
	p := in.ProfilePatch
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&p.Email, validation.NilOrNotEmpty, emailRule),
		validation.Field(&p.Phone, validation.Length(0, 20)),
	)
}

type passwordInput struct {
	Current string
	Next    string
	Confirm string
}

func (in passwordInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Current, validation.Required),
		validation.Field(&in.Next, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&in.Confirm, validation.Required, validation.By(equalsString(in.Next))),
	)
}

func equalsString(want string) validation.RuleFunc {
	return func(value interface{}) error {
		if s, _ := value.(string); s != want {
			return errors.New("passwords do not match")
		}
		return nil
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
