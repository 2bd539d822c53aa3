package stations

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vovarama1992/deepflow/internal/ports"
)

type S3Transcribe struct {
	stt ports.Transcriber
}

func NewS3Transcribe(stt ports.Transcriber) *S3Transcribe {
	return &S3Transcribe{stt: stt}
}

func (s *S3Transcribe) Run(ctx context.Context, path, modelSize string) (string, error) {
	start := time.Now()
	log.Printf("[S3][START] file=%s model=%s", path, modelSize)

	txt, err := s.stt.Transcribe(ctx, path, modelSize)
	if err != nil {
		log.Printf("[S3][ERR] %v", err)
		return "", fmt.Errorf("[S3] transcribe: %w", err)
	}

	txt = strings.TrimSpace(txt)
	if txt == "" {
		log.Printf("[S3][EMPTY] dur=%s", time.Since(start))
		return "", fmt.Errorf("[S3] empty transcript")
	}

	log.Printf("[S3][OK] text=%q dur=%s", trim(txt, 180), time.Since(start))
	return txt, nil
}
