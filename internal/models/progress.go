package models

type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventSegmentActive EventType = "segment_active"
	EventFragment      EventType = "fragment"
	EventSegmentDone   EventType = "segment_done"
	EventSegmentFailed EventType = "segment_failed"
	EventRunFinished   EventType = "run_finished"
)

type ProgressEvent struct {
	RunID     string    `json:"runId"`
	RoomID    string    `json:"-"`
	Type      EventType `json:"type"`
	Total     int       `json:"total"`
	Index     int       `json:"index"`
	Text      string    `json:"text,omitempty"`
	State     RunState  `json:"state,omitempty"`
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Error     string    `json:"error,omitempty"`
}
