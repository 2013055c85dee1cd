package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/helpers"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// tagErrorCodes overrides the FIELD_TAG code of custom validations.
var tagErrorCodes = map[string]string{
	"positive_decimal": apierrors.ErrInvalidWithdrawal,
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails on an empty tag or nil function.
	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})

	return v
}

// Validate decodes the JSON body into T, validates it and stores it in the request context.
func Validate[T any](next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var body T
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.ErrBadRequest})
			return
		}

		if err := validate.Struct(body); err != nil {
			helpers.RespondWithError(w, http.StatusBadRequest, formatValidationErrors(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.BodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// ValidateQuery maps the first value of every query parameter onto the json tags of T.
// Query structs are expected to only hold string fields.
func ValidateQuery[T any](next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		values := make(map[string]string)
		for key, v := range r.URL.Query() {
			if len(v) > 0 {
				values[key] = v[0]
			}
		}

		var query T
		raw, err := json.Marshal(values)
		if err == nil {
			err = json.Unmarshal(raw, &query)
		}
		if err != nil {
			helpers.RespondWithError(w, http.StatusBadRequest, []string{apierrors.ErrBadRequest})
			return
		}

		if err = validate.Struct(query); err != nil {
			helpers.RespondWithError(w, http.StatusBadRequest, formatValidationErrors(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.QueryKey{}, query)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

func formatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{apierrors.ErrBadRequest}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if code, ok := tagErrorCodes[fe.Tag()]; ok {
			messages = append(messages, code)
			continue
		}
		messages = append(messages, strings.ToUpper(fe.Field()+"_"+fe.Tag()))
	}
	return messages
}
