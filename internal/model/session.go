package model

import (
	"errors"
	"fmt"
	"time"
)

// EndReason tags how a study session ended.
type EndReason string

const (
	EndCompleted EndReason = "completed"
	EndStopped   EndReason = "stopped"
	EndAppClosed EndReason = "app_closed"
)

var (
	// ErrIncompleteSession is returned when a session is tagged as completed
	// but never reached its target.
	ErrIncompleteSession = errors.New("session did not reach its target")
	// ErrNegativeDuration is returned for negative durations or targets.
	ErrNegativeDuration = errors.New("duration must not be negative")
	// ErrUnknownEndReason is returned by ParseEndReason for unrecognised input.
	ErrUnknownEndReason = errors.New("unknown end reason")
)

// ParseEndReason maps user input onto an EndReason.
func ParseEndReason(s string) (EndReason, error) {
	switch EndReason(s) {
	case EndCompleted, EndStopped, EndAppClosed:
		return EndReason(s), nil
	case "closed":
		return EndAppClosed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEndReason, s)
}

// Label returns the short suffix shown next to a session in listings.
func (r EndReason) Label() string {
	switch r {
	case EndStopped:
		return "(stopped)"
	case EndAppClosed:
		return "(closed)"
	}
	return ""
}

// Session is one timed study attempt. Values are never modified after
// construction.
type Session struct {
	StartTime       time.Time `json:"start_time"`
	DurationSeconds int64     `json:"duration_seconds"`
	TargetSeconds   int64     `json:"target_seconds"`
	Completed       bool      `json:"completed"`
	EndReason       EndReason `json:"end_reason"`
}

// NewSession builds a Session, deriving Completed from duration and target.
// EndCompleted is only accepted when the target was reached.
func NewSession(start time.Time, duration, target int64, reason EndReason) (Session, error) {
	if duration < 0 || target < 0 {
		return Session{}, ErrNegativeDuration
	}
	completed := duration >= target
	if reason == EndCompleted && !completed {
		return Session{}, fmt.Errorf("%w: %ds of %ds", ErrIncompleteSession, duration, target)
	}
	return Session{
		StartTime:       start,
		DurationSeconds: duration,
		TargetSeconds:   target,
		Completed:       completed,
		EndReason:       reason,
	}, nil
}
