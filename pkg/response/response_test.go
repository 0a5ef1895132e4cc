package response

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newTestValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

func TestValidationErrorResponse(t *testing.T) {
	type req struct {
		URL string `json:"url" validate:"required"`
	}

	validate := newTestValidate()

	t.Run("not a validation error", func(t *testing.T) {
		resp := ValidationErrorResponse(errors.New("unknown error"))

		assert.Equal(t, BadRequestResponse, resp)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := validate.Struct(req{})
		resp := ValidationErrorResponse(err)

		assert.Contains(t, resp.Error, "url")
		assert.Contains(t, resp.Error, "required")
	})

	t.Run("valid struct", func(t *testing.T) {
		err := validate.Struct(req{URL: "https://example.com"})
		resp := ValidationErrorResponse(err)

		assert.Equal(t, BadRequestResponse, resp)
	})
}
