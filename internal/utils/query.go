package utils

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
)

// QueryInt safely parses an integer from query parameters.
// If missing or invalid, returns the provided default.
func QueryInt(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// PathID parses the {id} route parameter, which must be a positive
// integer that fits the int4 key columns.
func PathID(r *http.Request, label string) (int, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 32)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid %s ID", label)
	}
	return int(id), nil
}
