package repository

import "errors"

// Common repository errors
var (
	// ErrGoalNotFound is returned when a goal is not found
	ErrGoalNotFound = errors.New("goal not found")

	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrTeamNotFound is returned when a team is not found
	ErrTeamNotFound = errors.New("team not found")
)
