package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
	"github.com/FullUproar/ravenloomai-sub001/internal/repository"
)

type TaskHandler struct {
	resolver     *priority.Resolver
	orchestrator *priority.Orchestrator
}

func NewTaskHandler(resolver *priority.Resolver, orchestrator *priority.Orchestrator) *TaskHandler {
	return &TaskHandler{resolver: resolver, orchestrator: orchestrator}
}

// TaskPriorityRequest представляет запрос на смену собственного приоритета задачи
type TaskPriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

// TaskPriorityResponse представляет разрешенный приоритет задачи
type TaskPriorityResponse struct {
	TaskID            string  `json:"task_id"`
	OwnScore          float64 `json:"own_score"`
	EffectiveScore    float64 `json:"effective_score"`
	EffectivePriority string  `json:"effective_priority"`
	Conflict          bool    `json:"conflict"`
	Source            string  `json:"source"`
	GoalID            *string `json:"goal_id,omitempty"`
	GoalTitle         *string `json:"goal_title,omitempty"`
}

func toTaskPriorityResponse(res *priority.Resolution) TaskPriorityResponse {
	response := TaskPriorityResponse{
		TaskID:            res.TaskID.String(),
		OwnScore:          res.OwnScore,
		EffectiveScore:    res.EffectiveScore,
		EffectivePriority: res.EffectivePriority,
		Conflict:          res.Conflict,
		Source:            res.Source,
	}
	if res.TopGoal != nil {
		goalID := res.TopGoal.ID.String()
		response.GoalID = &goalID
		response.GoalTitle = &res.TopGoal.Title
	}
	return response
}

// ResolvePriority возвращает эффективный приоритет задачи без записи в кеш
func (h *TaskHandler) ResolvePriority(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve task priority"})
		return
	}

	c.JSON(http.StatusOK, toTaskPriorityResponse(res))
}

// SetPriority меняет собственный приоритет задачи и обновляет ее кеш
func (h *TaskHandler) SetPriority(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := h.orchestrator.SetTaskPriority(c.Request.Context(), taskID, req.Priority)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task priority"})
		return
	}

	c.JSON(http.StatusOK, toTaskPriorityResponse(res))
}
