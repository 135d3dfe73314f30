package pressroom

import (
	"github.com/go-playground/validator/v10"
)

// CommentForm collects a reader comment on a post.
type CommentForm struct {
	Name  string `form:"name" validate:"required,max=80"`
	Email string `form:"email" validate:"required,email"`
	Body  string `form:"body" validate:"required"`
}

// ShareForm collects the recommend-a-post-by-email submission.
type ShareForm struct {
	Name     string `form:"name" validate:"required,max=25"`
	Email    string `form:"email" validate:"required,email"`
	To       string `form:"to" validate:"required,email"`
	Comments string `form:"comments"`
}

// SearchForm carries the search query.
type SearchForm struct {
	Query string `form:"query" query:"query" validate:"required"`
}

// formValidator adapts go-playground/validator to echo's Validator interface.
type formValidator struct {
	validate *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *formValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens a validator error into per-field messages keyed by
// struct field name, for rendering next to form inputs.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": "invalid submission"}
	}
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "This field is required."
		case "email":
			out[fe.Field()] = "Enter a valid email address."
		case "max":
			out[fe.Field()] = "Ensure this value has at most " + fe.Param() + " characters."
		default:
			out[fe.Field()] = "Invalid value."
		}
	}
	return out
}
