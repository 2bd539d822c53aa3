package ports

import "github.com/Vovarama1992/deepflow/internal/models"

type ProgressSink interface {
	Publish(ev models.ProgressEvent)
}

type SinkFunc func(ev models.ProgressEvent)

func (f SinkFunc) Publish(ev models.ProgressEvent) { f(ev) }
