package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/FullUproar/ravenloomai-sub001/internal/handler"
	"github.com/FullUproar/ravenloomai-sub001/internal/model"
	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
	"github.com/FullUproar/ravenloomai-sub001/internal/repository"
)

type teamTestEnv struct {
	router   *gin.Engine
	teams    *MockTeamStore
	reports  *MockTaskReportStore
	tasks    *MockTaskStore
	goals    *MockGoalStore
	projects *MockProjectStore
}

func setupTeamRouter() *teamTestEnv {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	env := &teamTestEnv{
		router:   r,
		teams:    new(MockTeamStore),
		reports:  new(MockTaskReportStore),
		tasks:    new(MockTaskStore),
		goals:    new(MockGoalStore),
		projects: new(MockProjectStore),
	}

	resolver := priority.NewResolver(env.tasks, env.goals, env.projects)
	detector := priority.NewDetector(env.tasks, resolver)
	orchestrator := priority.NewOrchestrator(env.tasks, env.goals, resolver)
	suggester := priority.NewSuggester(env.tasks, env.goals, detector)
	ranker := priority.NewRanker(env.tasks)
	teamHandler := handler.NewTeamHandler(env.teams, env.reports, detector, orchestrator, suggester, ranker)

	r.GET("/teams/:id/priorities", teamHandler.Priorities)
	r.GET("/teams/:id/conflicts", teamHandler.Conflicts)
	r.GET("/teams/:id/conflicts/summary", teamHandler.ConflictSummary)
	r.POST("/teams/:id/recompute", teamHandler.Recompute)
	r.GET("/teams/:id/suggestions", teamHandler.Suggestions)
	r.GET("/teams/:id/queue", teamHandler.Queue)
	return env
}

func (env *teamTestEnv) expectTeam(teamID uuid.UUID) {
	env.teams.On("GetByID", mock.Anything, teamID).Return(&model.Team{
		ID:   teamID,
		Name: "Platform",
	}, nil)
}

func TestTeamPriorities_ReportsCachedFields(t *testing.T) {
	// Arrange
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	effective := 1.00
	label := "critical"
	task := model.Task{
		ID:                uuid.New(),
		TeamID:            teamID,
		Title:             "Draft budget",
		Priority:          "low",
		PriorityScore:     0.25,
		Status:            model.TaskStatusTodo,
		EffectiveScore:    &effective,
		EffectivePriority: &label,
		PriorityConflict:  true,
		PrioritySource:    model.PrioritySourceGoal,
	}
	env.reports.On("ListByTeam", mock.Anything, teamID, false, 50).Return([]model.Task{task}, nil)

	req, _ := http.NewRequest("GET", "/teams/"+teamID.String()+"/priorities", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"conflict":true`)
	assert.Contains(t, resp.Body.String(), `"priority_source":"goal"`)
}

func TestTeamPriorities_IncludeCompletedAndLimit(t *testing.T) {
	// Arrange: параметры запроса доходят до выборки
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	env.reports.On("ListByTeam", mock.Anything, teamID, true, 5).Return([]model.Task{}, nil)

	req, _ := http.NewRequest("GET", "/teams/"+teamID.String()+"/priorities?limit=5&include_completed=true", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	env.reports.AssertExpectations(t)
}

func TestTeamConflictSummary(t *testing.T) {
	// Arrange: один конфликт из-за critical цели
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	task := model.Task{
		ID:            uuid.New(),
		TeamID:        teamID,
		Title:         "Draft budget",
		Priority:      "low",
		PriorityScore: 0.25,
		Status:        model.TaskStatusTodo,
	}
	goal := model.Goal{
		ID:            uuid.New(),
		Title:         "Q1 Revenue",
		Priority:      "critical",
		PriorityScore: 1.00,
	}

	env.tasks.On("ListOpenByTeam", mock.Anything, teamID).Return([]model.Task{task}, nil)
	env.goals.On("GetByTaskID", mock.Anything, task.ID).Return([]model.Goal{goal}, nil)

	req, _ := http.NewRequest("GET", "/teams/"+teamID.String()+"/conflicts/summary", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.ConflictSummaryResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.True(t, response.HasConflicts)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, 1, response.Critical)
	assert.Equal(t, 0, response.Other)
	assert.Equal(t, "critical", response.Conflicts[0].GoalPriority)
}

func TestTeamRecompute(t *testing.T) {
	// Arrange
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	task := model.Task{
		ID:            uuid.New(),
		TeamID:        teamID,
		Title:         "Write docs",
		Priority:      "medium",
		PriorityScore: 0.50,
		Status:        model.TaskStatusTodo,
	}

	env.tasks.On("ListOpenByTeam", mock.Anything, teamID).Return([]model.Task{task}, nil)
	env.goals.On("GetByTaskID", mock.Anything, task.ID).Return([]model.Goal{}, nil)
	env.tasks.On("UpdateDerived", mock.Anything, task.ID, mock.Anything).Return(nil)

	req, _ := http.NewRequest("POST", "/teams/"+teamID.String()+"/recompute", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"updated_count":1`)
}

func TestTeamSuggestions_OrphanTask(t *testing.T) {
	// Arrange: задача high без проекта и без цели
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	orphan := model.Task{
		ID:            uuid.New(),
		TeamID:        teamID,
		Title:         "Buy snacks",
		Priority:      "high",
		PriorityScore: 0.75,
		Status:        model.TaskStatusTodo,
	}

	env.tasks.On("ListOpenByTeam", mock.Anything, teamID).Return([]model.Task{orphan}, nil)
	env.goals.On("GetByTaskID", mock.Anything, orphan.ID).Return([]model.Goal{}, nil)

	req, _ := http.NewRequest("GET", "/teams/"+teamID.String()+"/suggestions", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"action":"link_to_goal"`)
	assert.Contains(t, resp.Body.String(), "High priority task not linked to any goal")
}

func TestTeamQueue_RanksByEffectiveScore(t *testing.T) {
	// Arrange
	env := setupTeamRouter()
	teamID := uuid.New()
	env.expectTeam(teamID)

	now := time.Now()
	high := 0.75
	highLabel := "high"
	medium := 0.50
	mediumLabel := "medium"

	first := model.Task{
		ID:                uuid.New(),
		TeamID:            teamID,
		Title:             "Ship release",
		Priority:          "high",
		PriorityScore:     0.75,
		Status:            model.TaskStatusTodo,
		EffectiveScore:    &high,
		EffectivePriority: &highLabel,
		CreatedAt:         now,
	}
	second := model.Task{
		ID:                uuid.New(),
		TeamID:            teamID,
		Title:             "Refine backlog",
		Priority:          "medium",
		PriorityScore:     0.50,
		Status:            model.TaskStatusTodo,
		EffectiveScore:    &medium,
		EffectivePriority: &mediumLabel,
		CreatedAt:         now,
	}

	env.tasks.On("ListOpenByTeam", mock.Anything, teamID).Return([]model.Task{second, first}, nil)

	req, _ := http.NewRequest("GET", "/teams/"+teamID.String()+"/queue?limit=2", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Queue []handler.QueueItemResponse `json:"queue"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response.Queue, 2)
	assert.Equal(t, 1, response.Queue[0].Rank)
	assert.Equal(t, first.ID.String(), response.Queue[0].TaskID)
	assert.Equal(t, 2, response.Queue[1].Rank)
	assert.Equal(t, second.ID.String(), response.Queue[1].TaskID)
}

func TestTeamEndpoints_TeamNotFound(t *testing.T) {
	// Arrange
	env := setupTeamRouter()
	missingID := uuid.New()
	env.teams.On("GetByID", mock.Anything, missingID).Return(nil, repository.ErrTeamNotFound)

	req, _ := http.NewRequest("GET", "/teams/"+missingID.String()+"/queue", nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
