package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
	"github.com/FullUproar/ravenloomai-sub001/internal/repository"
)

type GoalHandler struct {
	orchestrator *priority.Orchestrator
}

func NewGoalHandler(orchestrator *priority.Orchestrator) *GoalHandler {
	return &GoalHandler{orchestrator: orchestrator}
}

// GoalPriorityRequest представляет запрос на смену приоритета цели
type GoalPriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

// GoalPriorityResponse представляет результат смены приоритета цели
type GoalPriorityResponse struct {
	GoalID            string  `json:"goal_id"`
	Priority          string  `json:"priority"`
	Score             float64 `json:"score"`
	AffectedTaskCount int     `json:"affected_task_count"`
}

// SetPriority меняет приоритет цели и распространяет его на задачи
func (h *GoalHandler) SetPriority(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal ID format"})
		return
	}

	var req GoalPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Неизвестная метка не ошибка: кодек сведет ее к medium
	score, affected, err := h.orchestrator.SetGoalPriority(c.Request.Context(), goalID, req.Priority)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal priority"})
		return
	}

	c.JSON(http.StatusOK, GoalPriorityResponse{
		GoalID:            goalID.String(),
		Priority:          req.Priority,
		Score:             score,
		AffectedTaskCount: affected,
	})
}
