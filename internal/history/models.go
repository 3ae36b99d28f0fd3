package history

import "time"

// Session summarizes one download invocation.
type Session struct {
	ID         string
	Series     string
	StartedAt  time.Time
	FinishedAt time.Time
	Workers    int
	Split      bool
	Total      int
	Succeeded  int
	Failed     int
}

// RunRecord is the persisted outcome of one run within a session.
type RunRecord struct {
	SessionID string
	Run       string
	Succeeded bool
}
