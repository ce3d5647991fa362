package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/projecthub/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the error taxonomy onto HTTP status codes. Internal and
// storage failures are reported without detail to avoid leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch common.KindOf(err) {
	case common.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case common.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case common.KindConflict:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case common.KindPermission:
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// idParam extracts a positive int64 URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrValidation
	}
	return id, nil
}

// callerID identifies the acting user from the X-User-ID header. Real
// authentication is out of scope; the header stands in for a verified
// identity supplied by an upstream gateway.
func callerID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrValidation
	}
	return id, nil
}
