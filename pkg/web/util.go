package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lodgeworks/lodged/pkg/proto"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck,gosec
}

// renderError maps domain errors to HTTP statuses. A lost decision race gets
// a distinct conflict body so clients can tell "someone else already decided
// this" apart from "the system is down".
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.FromContext(r.Context())

	switch {
	case errors.Is(err, proto.ErrInvalidPagination),
		errors.Is(err, proto.ErrInvalidPayment):
		renderJSON(w, http.StatusBadRequest, errBody(err))
	case errors.Is(err, proto.ErrUnauthorized):
		renderJSON(w, http.StatusUnauthorized, errBody(err))
	case errors.Is(err, proto.ErrAlreadyDecided):
		renderJSON(w, http.StatusConflict, map[string]interface{}{
			"error":    proto.ErrAlreadyDecided.Error(),
			"conflict": true,
		})
	case errors.Is(err, proto.ErrMemberNotFound),
		errors.Is(err, proto.ErrCollectorNotFound),
		errors.Is(err, proto.ErrPaymentNotFound),
		errors.Is(err, proto.ErrUserNotFound):
		renderJSON(w, http.StatusNotFound, errBody(err))
	case errors.Is(err, proto.ErrStorageUnavailable):
		logger.Error("storage unavailable", "err", err)
		renderJSON(w, http.StatusServiceUnavailable, errBody(proto.ErrStorageUnavailable))
	default:
		logger.Error("request failed", "err", err)
		renderJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "internal server error",
		})
	}
}

func errBody(err error) map[string]interface{} {
	return map[string]interface{}{"error": err.Error()}
}
