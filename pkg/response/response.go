package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the machine-readable error body returned by the API.
type Response struct {
	Error string `json:"error"`
}

var (
	EmptyRequestBodyResponse = Response{
		Error: "Request body is empty. Please provide necessary data.",
	}
	BadRequestResponse = Response{
		Error: "Request body contains invalid JSON.",
	}
	InvalidURLResponse = Response{
		Error: "The url must be an absolute http or https URL.",
	}
	CodeSpaceExhaustedResponse = Response{
		Error: "Could not allocate a unique short code. Please try again.",
	}
	ResourceNotFoundResponse = Response{
		Error: "The requested resource was not found.",
	}
	ServerErrorResponse = Response{
		Error: "An internal server error occurred. Please try again later.",
	}
)

type validationError struct {
	Field string
	Issue string
}

func getValidationErrors(err error) []validationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	errs := make([]validationError, 0, len(validationErrs))

	for _, vErr := range validationErrs {
		var issue string

		switch vErr.Tag() {
		case "required":
			issue = "field is required"
		default:
			issue = "field is invalid"
		}

		errs = append(errs, validationError{
			Field: vErr.Field(),
			Issue: issue,
		})
	}

	return errs
}

// ValidationErrorResponse flattens validator errors into a single error
// message listing each offending field.
func ValidationErrorResponse(err error) Response {
	errs := getValidationErrors(err)
	if len(errs) == 0 {
		return BadRequestResponse
	}

	parts := make([]string, 0, len(errs))
	for _, vErr := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", vErr.Field, vErr.Issue))
	}

	return Response{
		Error: fmt.Sprintf("Validation failed: %s.", strings.Join(parts, "; ")),
	}
}
