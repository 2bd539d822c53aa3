package ports

import (
	"context"

	"github.com/Vovarama1992/deepflow/internal/models"
)

type Downloader interface {
	Download(ctx context.Context, url string, mode models.DownloadMode) (*models.MediaFile, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, filePath, modelSize string) (string, error)
}

type MediaProcessor interface {
	Download(ctx context.Context, input string, mode models.DownloadMode) (*models.MediaFile, error)
	Transcribe(ctx context.Context, input, modelSize string) (*models.Transcript, error)
}
