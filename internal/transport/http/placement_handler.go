package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"chaining-quiz-service/internal/app"
	"chaining-quiz-service/internal/domain"
	"github.com/sirupsen/logrus"
)

// PlacementHandler serves stored placement results.
type PlacementHandler struct {
	service *app.PlacementService
	log     logrus.FieldLogger
}

func NewPlacementHandler(service *app.PlacementService, log logrus.FieldLogger) *PlacementHandler {
	return &PlacementHandler{service: service, log: log}
}

// ServeHTTP handles GET /placements?lang=..&userId=..
func (h *PlacementHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	language := r.URL.Query().Get("lang")
	userID := r.URL.Query().Get("userId")
	if language == "" || userID == "" {
		http.Error(w, "missing lang or userId", http.StatusBadRequest)
		return
	}

	placement, err := h.service.Placement(r.Context(), language, userID)
	if errors.Is(err, domain.ErrPlacementNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"language": language, "user_id": userID}).Error("load placement")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(placement)
}
