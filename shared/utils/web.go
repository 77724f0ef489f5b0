package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/varlopecar/react-form/shared/api"
	internal_errors "github.com/varlopecar/react-form/shared/errors"
	"github.com/varlopecar/react-form/shared/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteErrorAndStatusCode writes err as {"detail": ...}. Unclassified errors are
// reported as 500 without leaking their text.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		WriteJSON(w, e.StatusCode, api.ErrorResponse{Detail: e.Message})
		return
	}
	logger.Log.Error("internal error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{Detail: "Internal server error"})
}

// DecodeValidate decodes a JSON body and runs its validate tags.
// Malformed JSON is a 400, a body that decodes but breaks a rule is a 422.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return Validate(body)
}

// Validate runs the validate tags of body and reports the first broken rule
// as a 422 naming the json field.
func Validate(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	logger.Log.Debug("validation failed", "error", err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Invalid value for field '%s'", verrs[0].Field()),
			StatusCode: http.StatusUnprocessableEntity,
		}
	}
	return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusUnprocessableEntity}
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
