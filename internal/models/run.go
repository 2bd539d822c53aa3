package models

import "time"

type RunState string

const (
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunAborted   RunState = "aborted"
)

// SectionSeparator follows every merged segment result.
const SectionSeparator = "\n\n"

type PipelineRun struct {
	ID           string        `json:"id"`
	Jobs         []*SegmentJob `json:"jobs"`
	MergedOutput string        `json:"mergedOutput"`
	State        RunState      `json:"state"`
	StartedAt    time.Time     `json:"startedAt"`
	FinishedAt   time.Time     `json:"finishedAt"`
}

// FailedJob returns the job that aborted the run, or nil.
func (r *PipelineRun) FailedJob() *SegmentJob {
	for _, j := range r.Jobs {
		if j.State == JobFailed {
			return j
		}
	}
	return nil
}

func (r *PipelineRun) DoneCount() int {
	n := 0
	for _, j := range r.Jobs {
		if j.State == JobDone {
			n++
		}
	}
	return n
}
