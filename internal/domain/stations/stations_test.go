package stations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Vovarama1992/deepflow/internal/models"
)

func TestS1ExtractURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare link", "https://youtu.be/abc123", "https://youtu.be/abc123", false},
		{"share text", "3.14 复制打开抖音 https://v.douyin.com/iRNBho6/ 看看", "https://v.douyin.com/iRNBho6/", false},
		{"first of two", "a http://one.example/x b https://two.example/y", "http://one.example/x", false},
		{"no link", "just some words", "", true},
		{"empty", "", "", true},
	}

	s := NewS1ExtractURL()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Run(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

type stubDownloader struct {
	mode models.DownloadMode
	err  error
}

func (d *stubDownloader) Download(ctx context.Context, url string, mode models.DownloadMode) (*models.MediaFile, error) {
	d.mode = mode
	if d.err != nil {
		return nil, d.err
	}
	return &models.MediaFile{SourceURL: url, Path: "/tmp/clip.mp3", Mode: mode}, nil
}

func TestS2Download(t *testing.T) {
	dl := &stubDownloader{}
	f, err := NewS2Download(dl).Run(context.Background(), "https://x.example/v", models.ModeAudio)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.Path != "/tmp/clip.mp3" || dl.mode != models.ModeAudio {
		t.Errorf("Run() = %+v, mode %s", f, dl.mode)
	}

	if _, err := NewS2Download(dl).Run(context.Background(), "https://x.example/v", "gif"); err == nil {
		t.Error("unknown mode accepted")
	}

	boom := errors.New("yt-dlp exit 1")
	if _, err := NewS2Download(&stubDownloader{err: boom}).Run(context.Background(), "u", models.ModeVideo); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped downloader error", err)
	}
}

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(ctx context.Context, filePath, modelSize string) (string, error) {
	return s.text, s.err
}

func TestS3Transcribe(t *testing.T) {
	tests := []struct {
		name    string
		stt     stubTranscriber
		want    string
		wantErr bool
	}{
		{"trimmed", stubTranscriber{text: "  hello there \n"}, "hello there", false},
		{"blank", stubTranscriber{text: " \n "}, "", true},
		{"failure", stubTranscriber{err: errors.New("whisper crashed")}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewS3Transcribe(tt.stt).Run(context.Background(), "a.mp3", "base")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"ascii cut", "abcdef", 3, "abc…"},
		{"cjk cut on rune", "a" + strings.Repeat("中", 100), 3, "a中中…"},
		{"cjk fits", "中文", 2, "中文"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trim(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("trim() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("trim() produced invalid UTF-8: %q", got)
			}
		})
	}
}
