package models

type JobState string

const (
	JobPending JobState = "pending"
	JobActive  JobState = "active"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

type ErrorKind string

const (
	ErrorKindNone                 ErrorKind = ""
	ErrorKindSegmentRequestFailed ErrorKind = "segment_request_failed"
	ErrorKindCancelled            ErrorKind = "cancelled"
)

type Segment struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
	Offset  int    `json:"offset"` // rune offset in the source text
}

type SegmentJob struct {
	Segment     Segment   `json:"segment"`
	State       JobState  `json:"state"`
	Result      string    `json:"result,omitempty"`
	ErrorKind   ErrorKind `json:"errorKind,omitempty"`
	ErrorDetail string    `json:"errorDetail,omitempty"`
}
