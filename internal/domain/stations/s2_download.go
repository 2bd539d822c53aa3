package stations

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
)

type S2Download struct {
	dl ports.Downloader
}

func NewS2Download(dl ports.Downloader) *S2Download {
	return &S2Download{dl: dl}
}

func (s *S2Download) Run(ctx context.Context, url string, mode models.DownloadMode) (*models.MediaFile, error) {
	start := time.Now()
	log.Printf("[S2][START] url=%s mode=%s", url, mode)

	if mode != models.ModeAudio && mode != models.ModeVideo {
		return nil, fmt.Errorf("[S2] unknown mode %q", mode)
	}

	f, err := s.dl.Download(ctx, url, mode)
	if err != nil {
		log.Printf("[S2][ERR] %v", err)
		return nil, fmt.Errorf("[S2] download: %w", err)
	}

	log.Printf("[S2][OK] path=%s dur=%s", f.Path, time.Since(start))
	return f, nil
}
