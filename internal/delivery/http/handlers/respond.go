package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LavaJover/restaurant-orders/internal/delivery/http/dto/order/response"
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response body")
	}
}

// writeError maps usecase errors to API responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, response.ErrorResponse{Detail: "Not found."})
	default:
		log.WithFields(log.Fields{
			"method": r.Method,
			"url":    r.URL.String(),
		}).WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, response.ErrorResponse{Detail: "A server error occurred."})
	}
}
