package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/architeacher/device-tracker/pkg/logger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// RequestValidator validates every inbound request against the API
// description before it reaches a handler.
func RequestValidator(log logger.Logger, doc *openapi3.T) func(http.Handler) http.Handler {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create OpenAPI router")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			statusCode, validationErrs := validateRequest(r, router)
			if len(validationErrs) > 0 {
				writeValidationErrors(w, statusCode, validationErrs)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validateRequest(r *http.Request, router routers.Router) (int, []string) {
	route, pathParams, err := router.FindRoute(r)
	if err != nil {
		return http.StatusNotFound, []string{http.StatusText(http.StatusNotFound)}
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}

	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return http.StatusBadRequest, flattenValidationError(err)
	}

	return http.StatusOK, nil
}

func flattenValidationError(err error) []string {
	var multiErr openapi3.MultiError
	if errors.As(err, &multiErr) {
		messages := make([]string, 0, len(multiErr))
		for _, e := range multiErr {
			messages = append(messages, validationErrorMessage(e))
		}

		return messages
	}

	return []string{validationErrorMessage(err)}
}

func validationErrorMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		var schemaErr *openapi3.SchemaError
		if errors.As(requestErr.Err, &schemaErr) {
			return schemaErr.Reason
		}

		if requestErr.Reason != "" {
			return requestErr.Reason
		}

		return requestErr.Error()
	}

	return err.Error()
}

func writeValidationErrors(w http.ResponseWriter, statusCode int, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    statusCode,
		"errors":    messages,
	})
}
