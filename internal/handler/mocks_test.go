package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
)

// Мок хранилища задач
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) ListOpenByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, teamID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) ListOpenReachingGoal(ctx context.Context, goalID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, goalID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) UpdateDerived(ctx context.Context, id uuid.UUID, fields priority.DerivedFields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockTaskStore) SetOwnPriority(ctx context.Context, id uuid.UUID, label string, score float64) error {
	args := m.Called(ctx, id, label, score)
	return args.Error(0)
}

// Мок хранилища целей
type MockGoalStore struct {
	mock.Mock
}

func (m *MockGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	args := m.Called(ctx, id)
	goal := args.Get(0)
	if goal == nil {
		return nil, args.Error(1)
	}
	return goal.(*model.Goal), args.Error(1)
}

func (m *MockGoalStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Goal, error) {
	args := m.Called(ctx, taskID)
	goals := args.Get(0)
	if goals == nil {
		return nil, args.Error(1)
	}
	return goals.([]model.Goal), args.Error(1)
}

func (m *MockGoalStore) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Goal, error) {
	args := m.Called(ctx, projectID)
	goals := args.Get(0)
	if goals == nil {
		return nil, args.Error(1)
	}
	return goals.([]model.Goal), args.Error(1)
}

func (m *MockGoalStore) UpdatePriority(ctx context.Context, id uuid.UUID, label string, score float64) error {
	args := m.Called(ctx, id, label, score)
	return args.Error(0)
}

// Мок хранилища проектов
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

// Мок хранилища команд
type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	args := m.Called(ctx, id)
	team := args.Get(0)
	if team == nil {
		return nil, args.Error(1)
	}
	return team.(*model.Team), args.Error(1)
}

// Мок выборки задач для отчета
type MockTaskReportStore struct {
	mock.Mock
}

func (m *MockTaskReportStore) ListByTeam(ctx context.Context, teamID uuid.UUID, includeCompleted bool, limit int) ([]model.Task, error) {
	args := m.Called(ctx, teamID, includeCompleted, limit)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}
