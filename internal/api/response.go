package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Topsis/internal/mailer"
	"github.com/MikeSquared-Agency/Topsis/internal/store"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

var errUploadTooLarge = errors.New("upload exceeds size limit")

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeJSON marshals v before writing the status. A value that cannot be
// encoded is answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "failed to encode response", Kind: "internal"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// errorStatus maps an error to its HTTP status and kind label.
func errorStatus(err error) (int, string) {
	if kind := topsis.KindOf(err); kind != "" {
		if errors.Is(err, topsis.ErrMissingInput) {
			return http.StatusBadRequest, kind
		}
		return http.StatusUnprocessableEntity, kind
	}
	switch {
	case errors.Is(err, mailer.ErrInvalidAddress):
		return http.StatusBadRequest, "invalid_email"
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, "upload_too_large"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
