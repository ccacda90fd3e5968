package model

import "github.com/google/uuid"

// RunID identifies one reconciliation run in logs and reports
type RunID string

// NewRunID generates a time-ordered UUID v7 RunID
func NewRunID() RunID {
	return RunID(uuid.Must(uuid.NewV7()).String())
}

// Plan is the set of remote mutations computed for a run
type Plan struct {
	Disable []string
	Add     []string
	Enable  []string
}

// IsEmpty reports whether the run neither adds nor disables options
func (p *Plan) IsEmpty() bool {
	return len(p.Disable) == 0 && len(p.Add) == 0
}

// SyncReport summarizes a completed run
type SyncReport struct {
	RunID     RunID
	FieldID   string
	DryRun    bool
	Plan      Plan
	Order     []string
	Positions PositionMap
}
