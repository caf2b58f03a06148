package get_rules

import (
	"net/http"

	"github.com/holistia/booking-service/internal/api/handlers"
	"github.com/holistia/booking-service/internal/rules"
)

type Handler struct {
	snapshot *RulesResponse
	logger   Logger
}

func NewHandler(r *rules.Rules, logger Logger) *Handler {
	return &Handler{
		snapshot: FromRules(r),
		logger:   logger,
	}
}

// Handle GET /api/v1/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.snapshot)
}
