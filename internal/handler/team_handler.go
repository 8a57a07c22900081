package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
	"github.com/FullUproar/ravenloomai-sub001/internal/repository"
)

// Лимиты выборок по умолчанию
const (
	defaultPrioritiesLimit = 50
	defaultQueueLimit      = 10
)

// TeamStore — доступ к командам, нужный обработчику
type TeamStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
}

// TaskReportStore — выборка задач для отчета по приоритетам
type TaskReportStore interface {
	ListByTeam(ctx context.Context, teamID uuid.UUID, includeCompleted bool, limit int) ([]model.Task, error)
}

type TeamHandler struct {
	teamRepo     TeamStore
	taskRepo     TaskReportStore
	detector     *priority.Detector
	orchestrator *priority.Orchestrator
	suggester    *priority.Suggester
	ranker       *priority.Ranker
}

func NewTeamHandler(
	teamRepo TeamStore,
	taskRepo TaskReportStore,
	detector *priority.Detector,
	orchestrator *priority.Orchestrator,
	suggester *priority.Suggester,
	ranker *priority.Ranker,
) *TeamHandler {
	return &TeamHandler{
		teamRepo:     teamRepo,
		taskRepo:     taskRepo,
		detector:     detector,
		orchestrator: orchestrator,
		suggester:    suggester,
		ranker:       ranker,
	}
}

// TeamTaskResponse представляет задачу в отчете по приоритетам команды
type TeamTaskResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	PriorityScore     float64  `json:"priority_score"`
	EffectiveScore    *float64 `json:"effective_score,omitempty"`
	EffectivePriority *string  `json:"effective_priority,omitempty"`
	Conflict          bool     `json:"conflict"`
	PrioritySource    string   `json:"priority_source"`
	DueDate           *string  `json:"due_date,omitempty"`
	AssignedTo        *string  `json:"assigned_to,omitempty"`
	ProjectID         *string  `json:"project_id,omitempty"`
}

func toTeamTaskResponse(task *model.Task) TeamTaskResponse {
	response := TeamTaskResponse{
		ID:                task.ID.String(),
		Title:             task.Title,
		Status:            task.Status,
		Priority:          task.Priority,
		PriorityScore:     task.PriorityScore,
		EffectiveScore:    task.EffectiveScore,
		EffectivePriority: task.EffectivePriority,
		Conflict:          task.PriorityConflict,
		PrioritySource:    task.PrioritySource,
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(time.RFC3339)
		response.DueDate = &dueDate
	}
	if task.AssignedTo != nil {
		assignedTo := task.AssignedTo.String()
		response.AssignedTo = &assignedTo
	}
	if task.ProjectID != nil {
		projectID := task.ProjectID.String()
		response.ProjectID = &projectID
	}
	return response
}

// ConflictResponse представляет один конфликт приоритетов
type ConflictResponse struct {
	TaskID         string  `json:"task_id"`
	TaskTitle      string  `json:"task_title"`
	TaskPriority   string  `json:"task_priority"`
	OwnScore       float64 `json:"own_score"`
	EffectiveScore float64 `json:"effective_score"`
	GoalID         string  `json:"goal_id"`
	GoalTitle      string  `json:"goal_title"`
	GoalPriority   string  `json:"goal_priority"`
}

func toConflictResponses(conflicts []priority.TaskConflict) []ConflictResponse {
	responses := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		responses[i] = ConflictResponse{
			TaskID:         c.Task.ID.String(),
			TaskTitle:      c.Task.Title,
			TaskPriority:   c.Task.Priority,
			OwnScore:       c.OwnScore,
			EffectiveScore: c.EffectiveScore,
			GoalID:         c.Goal.ID.String(),
			GoalTitle:      c.Goal.Title,
			GoalPriority:   c.Goal.Priority,
		}
	}
	return responses
}

// ConflictSummaryResponse представляет сводку конфликтов команды
type ConflictSummaryResponse struct {
	HasConflicts bool               `json:"has_conflicts"`
	Total        int                `json:"total"`
	Critical     int                `json:"critical"`
	Other        int                `json:"other"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// SuggestionResponse представляет одну рекомендацию
type SuggestionResponse struct {
	TaskID          string  `json:"task_id"`
	TaskTitle       string  `json:"task_title"`
	Action          string  `json:"action"`
	CurrentPriority string  `json:"current_priority"`
	GoalID          *string `json:"goal_id,omitempty"`
	GoalPriority    string  `json:"goal_priority,omitempty"`
	Reason          string  `json:"reason"`
}

// QueueItemResponse представляет позицию в очереди приоритетов
type QueueItemResponse struct {
	Rank              int      `json:"rank"`
	TaskID            string   `json:"task_id"`
	Title             string   `json:"title"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	EffectiveScore    *float64 `json:"effective_score,omitempty"`
	EffectivePriority *string  `json:"effective_priority,omitempty"`
	DueDate           *string  `json:"due_date,omitempty"`
	AssignedTo        *string  `json:"assigned_to,omitempty"`
}

func (h *TeamHandler) teamID(c *gin.Context) (uuid.UUID, bool) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return uuid.Nil, false
	}

	if _, err := h.teamRepo.GetByID(c.Request.Context(), teamID); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return uuid.Nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return uuid.Nil, false
	}
	return teamID, true
}

// Priorities возвращает отчет по приоритетам задач команды
func (h *TeamHandler) Priorities(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	limit := defaultPrioritiesLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	includeCompleted := c.Query("include_completed") == "true"

	tasks, err := h.taskRepo.ListByTeam(c.Request.Context(), teamID, includeCompleted, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	responses := make([]TeamTaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = toTeamTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, gin.H{"tasks": responses})
}

// Conflicts возвращает список конфликтов приоритетов команды
func (h *TeamHandler) Conflicts(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	conflicts, err := h.detector.Detect(c.Request.Context(), teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect conflicts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conflicts": toConflictResponses(conflicts)})
}

// ConflictSummary возвращает сводку конфликтов команды
func (h *TeamHandler) ConflictSummary(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	summary, err := h.detector.Summary(c.Request.Context(), teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect conflicts"})
		return
	}

	c.JSON(http.StatusOK, ConflictSummaryResponse{
		HasConflicts: summary.HasConflicts,
		Total:        summary.Total,
		Critical:     summary.Critical,
		Other:        summary.Other,
		Conflicts:    toConflictResponses(summary.Conflicts),
	})
}

// Recompute пересчитывает кеш приоритетов всех открытых задач команды
func (h *TeamHandler) Recompute(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	updated, err := h.orchestrator.RecomputeTeam(c.Request.Context(), teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute team priorities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated_count": updated})
}

// Suggestions возвращает рекомендации по приоритетам команды
func (h *TeamHandler) Suggestions(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	suggestions, err := h.suggester.Suggest(c.Request.Context(), teamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build suggestions"})
		return
	}

	responses := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = SuggestionResponse{
			TaskID:          s.TaskID.String(),
			TaskTitle:       s.TaskTitle,
			Action:          s.Action,
			CurrentPriority: s.CurrentPriority,
			GoalPriority:    s.GoalPriority,
			Reason:          s.Reason,
		}
		if s.GoalID != nil {
			goalID := s.GoalID.String()
			responses[i].GoalID = &goalID
		}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": responses})
}

// Queue возвращает ранжированную очередь "что делать дальше"
func (h *TeamHandler) Queue(c *gin.Context) {
	teamID, ok := h.teamID(c)
	if !ok {
		return
	}

	opts := priority.QueueOptions{Limit: defaultQueueLimit}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		opts.Limit = parsed
	}
	if raw := c.Query("assignee_id"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		opts.AssigneeID = &assigneeID
	}
	opts.ExcludeBlocked = c.Query("exclude_blocked") == "true"

	items, err := h.ranker.Queue(c.Request.Context(), teamID, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build priority queue"})
		return
	}

	responses := make([]QueueItemResponse, len(items))
	for i, item := range items {
		task := item.Task
		responses[i] = QueueItemResponse{
			Rank:              item.Rank,
			TaskID:            task.ID.String(),
			Title:             task.Title,
			Status:            task.Status,
			Priority:          task.Priority,
			EffectiveScore:    task.EffectiveScore,
			EffectivePriority: task.EffectivePriority,
		}
		if task.DueDate != nil {
			dueDate := task.DueDate.Format(time.RFC3339)
			responses[i].DueDate = &dueDate
		}
		if task.AssignedTo != nil {
			assignedTo := task.AssignedTo.String()
			responses[i].AssignedTo = &assignedTo
		}
	}
	c.JSON(http.StatusOK, gin.H{"queue": responses})
}
