package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/domain"
	"github.com/phrazzld/event-calendar-api/internal/service"
)

// pathInt64 parses a positive integer path parameter.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, malformed(fmt.Errorf("path parameter %s is required", name))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, malformed(fmt.Errorf("path parameter %s must be a positive integer", name))
	}
	return id, nil
}

// pathString returns a non-empty, unescaped path parameter. chi matches
// against the raw path when the request carries escaped slashes.
func pathString(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(value)
		if err != nil {
			return "", malformed(fmt.Errorf("path parameter %s: %w", name, err))
		}
		value = unescaped
	}
	if value == "" {
		return "", malformed(fmt.Errorf("path parameter %s is required", name))
	}
	return value, nil
}

// requiredQuery returns a query parameter that must be present.
func requiredQuery(r *http.Request, name string) (string, error) {
	query := r.URL.Query()
	if !query.Has(name) {
		return "", malformed(fmt.Errorf("query parameter %s is required", name))
	}
	return query.Get(name), nil
}

// queryInt64 parses a required positive integer query parameter.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw, err := requiredQuery(r, name)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, malformed(fmt.Errorf("query parameter %s must be a positive integer", name))
	}
	return id, nil
}

// optionalQuery returns a pointer to the query parameter, or nil when absent.
func optionalQuery(r *http.Request, name string) *string {
	query := r.URL.Query()
	if !query.Has(name) {
		return nil
	}
	value := query.Get(name)
	return &value
}

// decodeAndValidate reads the JSON body into v and validates it. An
// unparseable date is reported as an invalid deadline rather than a
// malformed body.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return fmt.Errorf("%w: %w", service.ErrInvalidDeadline, err)
		}
		return malformed(err)
	}
	if err := shared.ValidateRequest(v); err != nil {
		return malformed(err)
	}
	return nil
}
