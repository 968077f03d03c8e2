// Package contact holds the contact form state and what happens to a
// submitted form.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownField is returned by Form.Set for a field the form does not have.
var ErrUnknownField = errors.New("contact: unknown field")

var validate = validator.New()

// Field names a form input. The values match the inputs' name attributes.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Form is the contact form's state. It is a value type; Set returns a copy.
type Form struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Message string `form:"message" json:"message" validate:"required"`
}

// Set returns f with one field replaced.
func (f Form) Set(field Field, value string) (Form, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f, nil
}

// Get returns the value of one field.
func (f Form) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldMessage:
		return f.Message
	}
	return ""
}

// FieldErrors maps a field to a human readable problem.
type FieldErrors map[Field]string

// For returns the problem with the named field, or "".
func (e FieldErrors) For(field string) string {
	return e[Field(field)]
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range Fields {
		if msg, ok := e[f]; ok {
			parts = append(parts, string(f)+": "+msg)
		}
	}
	return "contact: invalid form: " + strings.Join(parts, ", ")
}

// Validate applies the same checks the browser does for the inputs
// (required, email format). Fields are checked independently.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrs := FieldErrors{}
	for _, fe := range verrs {
		field := Field(strings.ToLower(fe.StructField()))
		switch fe.Tag() {
		case "required":
			fieldErrs[field] = "is required"
		case "email":
			fieldErrs[field] = "must be an email address"
		default:
			fieldErrs[field] = "is invalid"
		}
	}
	return fieldErrs
}
