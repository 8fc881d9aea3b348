package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Fail writes err as a JSON error body. Client errors keep their own
// message; anything else is logged and answered with fallback.
func Fail(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	status := apperror.HTTPStatus(err)
	if status < http.StatusInternalServerError {
		e, _ := apperror.As(err)
		Error(w, status, e.Message)
		return
	}
	log.Error().Err(err).Msg(fallback)
	Error(w, http.StatusInternalServerError, fallback)
}

// Decode reads a JSON body into v. Unknown fields are ignored; a field of
// the wrong type is reported by its JSON name.
func Decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return apperror.Validation("%s is invalid", ute.Field)
	}
	return apperror.Validation("invalid json")
}
