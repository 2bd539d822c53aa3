package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/Vovarama1992/deepflow/internal/domain/stations"
	"github.com/Vovarama1992/deepflow/internal/models"
)

type fakeDownloader struct {
	calls []models.DownloadMode
}

func (d *fakeDownloader) Download(ctx context.Context, url string, mode models.DownloadMode) (*models.MediaFile, error) {
	d.calls = append(d.calls, mode)
	return &models.MediaFile{SourceURL: url, Path: "downloads/talk.mp3", Title: "talk", Mode: mode}, nil
}

type fakeTranscriber struct {
	model string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filePath, modelSize string) (string, error) {
	f.model = modelSize
	return "transcribed words", nil
}

func newMediaService(dl *fakeDownloader, stt *fakeTranscriber) *MediaService {
	return NewMediaService(
		stations.NewS1ExtractURL(),
		stations.NewS2Download(dl),
		stations.NewS3Transcribe(stt),
		"base",
		nopLogger(),
	)
}

func TestMediaDownloadDefaultsToVideo(t *testing.T) {
	dl := &fakeDownloader{}
	f, err := newMediaService(dl, &fakeTranscriber{}).Download(context.Background(), "look https://example.com/v/1 now", "")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if f.SourceURL != "https://example.com/v/1" {
		t.Errorf("url = %q", f.SourceURL)
	}
	if len(dl.calls) != 1 || dl.calls[0] != models.ModeVideo {
		t.Errorf("modes = %v, want [video]", dl.calls)
	}
}

func TestMediaDownloadWithoutLink(t *testing.T) {
	dl := &fakeDownloader{}
	_, err := newMediaService(dl, &fakeTranscriber{}).Download(context.Background(), "no link here", models.ModeAudio)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if len(dl.calls) != 0 {
		t.Errorf("downloader called")
	}
}

func TestMediaTranscribe(t *testing.T) {
	dl := &fakeDownloader{}
	stt := &fakeTranscriber{}

	tr, err := newMediaService(dl, stt).Transcribe(context.Background(), "https://example.com/v/2", "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if dl.calls[0] != models.ModeAudio {
		t.Errorf("download mode = %s, want audio", dl.calls[0])
	}
	if stt.model != "base" || tr.ModelSize != "base" {
		t.Errorf("model = %q / %q, want default base", stt.model, tr.ModelSize)
	}
	if tr.Text != "transcribed words" || tr.MediaPath != "downloads/talk.mp3" {
		t.Errorf("transcript = %+v", tr)
	}
}

func TestMediaDownloadUnknownMode(t *testing.T) {
	dl := &fakeDownloader{}
	_, err := newMediaService(dl, &fakeTranscriber{}).Download(context.Background(), "https://example.com/v/3", "mp3")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if len(dl.calls) != 0 {
		t.Errorf("downloader called with %v", dl.calls)
	}
}
