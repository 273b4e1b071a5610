// Package model defines domain entities for the application.
package model

import "time"

// ApplicationState tracks where a user stands on a job.
type ApplicationState string

const (
	StateInterested ApplicationState = "interested"
	StateApplied    ApplicationState = "applied"
	StateAccepted   ApplicationState = "accepted"
	StateRejected   ApplicationState = "rejected"
)

// IsValid checks if the application state is one of the known states.
func (s ApplicationState) IsValid() bool {
	switch s {
	case StateInterested, StateApplied, StateAccepted, StateRejected:
		return true
	}
	return false
}

// Application records one state a user held on a job. Rows are
// append-only: state changes insert a new row rather than overwrite.
type Application struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	JobID     int64            `json:"job_id"`
	State     ApplicationState `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
}
