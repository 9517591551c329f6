package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oseayemenre/upepo/internal/models"
)

const maxJSONBody = 1 << 20

var (
	errInvalidJSON  = errors.New("invalid json body")
	errInvalidInput = errors.New("invalid input")
	errUnauthorized = errors.New("unauthorized")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func respondWithSuccess(w http.ResponseWriter, code int, data any) {
	if code == http.StatusNoContent {
		w.WriteHeader(code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, code int, err error) {
	respondWithSuccess(w, code, models.ErrorResponse{Error: err.Error()})
}

func respondWithFieldErrors(w http.ResponseWriter, details []models.FieldError) {
	respondWithSuccess(w, http.StatusBadRequest, models.ErrorResponse{
		Error:   errInvalidInput.Error(),
		Details: details,
	})
}

func respondWithValidationError(w http.ResponseWriter, err error) {
	respondWithFieldErrors(w, validationDetails(err))
}

func decodeJson(r *http.Request, params any) error {
	if r.Body == nil {
		return fmt.Errorf("empty body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))

	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("error decoding json: %w", err)
	}

	return nil
}

// validationDetails flattens validator errors into one entry per failing field.
func validationDetails(err error) []models.FieldError {
	var verrs validator.ValidationErrors

	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "body", Message: err.Error()}}
	}

	details := make([]models.FieldError, 0, len(verrs))

	for _, fe := range verrs {
		details = append(details, models.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "url":
		return "must be a valid url"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return "must be a date formatted as YYYY-MM-DD"
		}
		return "must be an RFC 3339 timestamp"
	default:
		return "is invalid"
	}
}
