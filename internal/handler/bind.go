package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"bizcard-service/internal/apperror"
	"bizcard-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

// decodeStrict reads the JSON body into dst, rejecting fields dst does not
// declare.
func decodeStrict(c echo.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return apperror.Validation(`"value" must be of type object`)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return expectEOF(dec)
}

// expectEOF fails when anything but whitespace follows the first JSON value.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperror.BadRequest("Invalid JSON body")
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "value"
		}
		return apperror.Validation(fmt.Sprintf("%q must be of type %s", field, jsonKind(typeErr.Type.Kind().String())))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.BadRequest("Invalid JSON body")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return apperror.Validation(field + " is not allowed")
	default:
		return apperror.BadRequest("Invalid request body")
	}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "struct", "map", "ptr":
		return "object"
	case "slice", "array":
		return "array"
	default:
		return "number"
	}
}

// bindAndValidate decodes the body strictly and runs the struct constraints,
// surfacing the first violation as a validation error.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := decodeStrict(c, dst); err != nil {
		return err
	}
	if err := c.Validate(dst); err != nil {
		var verr *validator.Error
		if errors.As(err, &verr) {
			return apperror.Validation(verr.Message)
		}
		return apperror.Internal(err)
	}
	return nil
}
