package events

import "time"

// ExecuteStart is emitted before a parsed document starts executing.
type ExecuteStart struct {
	Query string
}

// ExecuteFinish is emitted after the document finishes executing.
type ExecuteFinish struct {
	Query      string
	ErrorCount int
	Duration   time.Duration
}

// FieldResolveStart is emitted before a field's resolver is invoked.
type FieldResolveStart struct {
	ParentType string
	Field      string
	Path       string
}

// FieldResolveFinish is emitted after a field's resolver returned.
type FieldResolveFinish struct {
	ParentType string
	Field      string
	Path       string
	Failed     bool
	Duration   time.Duration
}
