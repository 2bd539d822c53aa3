package domain

import (
	"context"

	"github.com/Vovarama1992/deepflow/internal/domain/stations"
	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/go-utils/logger"
)

// MediaService runs the link → download → transcript stations. It is glue
// around external tools; the refine pipeline never depends on it.
type MediaService struct {
	s1 *stations.S1ExtractURL
	s2 *stations.S2Download
	s3 *stations.S3Transcribe

	defaultModel string
	log          *logger.ZapLogger
}

func NewMediaService(
	s1 *stations.S1ExtractURL,
	s2 *stations.S2Download,
	s3 *stations.S3Transcribe,
	defaultModel string,
	log *logger.ZapLogger,
) *MediaService {
	return &MediaService{
		s1:           s1,
		s2:           s2,
		s3:           s3,
		defaultModel: defaultModel,
		log:          log,
	}
}

func (m *MediaService) Download(ctx context.Context, input string, mode models.DownloadMode) (*models.MediaFile, error) {
	switch mode {
	case "":
		mode = models.ModeVideo
	case models.ModeVideo, models.ModeAudio:
	default:
		return nil, invalidArg("unknown download mode %q", mode)
	}

	url, err := m.s1.Run(input)
	if err != nil {
		return nil, invalidArg("%v", err)
	}
	return m.s2.Run(ctx, url, mode)
}

func (m *MediaService) Transcribe(ctx context.Context, input, modelSize string) (*models.Transcript, error) {
	if modelSize == "" {
		modelSize = m.defaultModel
	}

	f, err := m.Download(ctx, input, models.ModeAudio)
	if err != nil {
		return nil, err
	}

	text, err := m.s3.Run(ctx, f.Path, modelSize)
	if err != nil {
		return nil, err
	}

	m.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media transcribed",
		Fields: map[string]any{
			"url":    f.SourceURL,
			"file":   f.Path,
			"model":  modelSize,
			"length": len(text),
		},
	})

	return &models.Transcript{
		SourceURL: f.SourceURL,
		MediaPath: f.Path,
		ModelSize: modelSize,
		Text:      text,
	}, nil
}
