package handlers

import (
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middleware"
	"github.com/taskhive/taskhive/internal/service"
)

type DashboardHandler struct {
	tasks *service.TaskService
	log   *logger.Logger
}

func NewDashboardHandler(tasks *service.TaskService) *DashboardHandler {
	return &DashboardHandler{
		tasks: tasks,
		log:   logger.New("dashboard-handler"),
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	stats, err := h.tasks.Stats(r.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to compute stats for %s: %v", user.ID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
