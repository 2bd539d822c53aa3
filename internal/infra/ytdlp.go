package infra

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/pkg/executor"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

var mediaExtensions = []string{".mp4", ".mkv", ".webm", ".mp3", ".m4a", ".wav"}

type YTDLPDownloader struct {
	exec       executor.Executor
	binary     string
	dir        string
	cookieFile string
}

func NewYTDLPDownloader(exec executor.Executor, binary, dir, cookieFile string) *YTDLPDownloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPDownloader{
		exec:       exec,
		binary:     binary,
		dir:        dir,
		cookieFile: cookieFile,
	}
}

func (d *YTDLPDownloader) args(url string, mode models.DownloadMode) []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--user-agent", defaultUserAgent,
		"-o", filepath.Join(d.dir, "%(title)s.%(ext)s"),
		"--print", "after_move:filepath",
	}

	if mode == models.ModeAudio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K",
		)
	} else {
		args = append(args, "-f", "bestvideo+bestaudio/best")
	}

	// cookies present → pass them along
	if d.cookieFile != "" {
		if _, err := os.Stat(d.cookieFile); err == nil {
			args = append(args, "--cookies", d.cookieFile)
		}
	}

	return append(args, url)
}

func (d *YTDLPDownloader) Download(ctx context.Context, url string, mode models.DownloadMode) (*models.MediaFile, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	started := time.Now()
	out, err := d.exec.Execute(ctx, d.binary, d.args(url, mode)...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	path := lastLine(out)
	if path == "" {
		log.Printf("[YTDLP][WARN] no printed path, scanning %s", d.dir)
		path, err = newestMedia(d.dir, started)
		if err != nil {
			return nil, err
		}
	}

	return &models.MediaFile{
		SourceURL: url,
		Path:      path,
		Title:     filepath.Base(path),
		Mode:      mode,
	}, nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if ln := strings.TrimSpace(lines[i]); ln != "" {
			return ln
		}
	}
	return ""
}

// newestMedia picks the most recently modified media file in dir that was
// written at or after since.
func newestMedia(dir string, since time.Time) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read download dir: %w", err)
	}

	var (
		best    string
		bestMod time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !isMedia(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		if mod.Before(since.Add(-time.Second)) {
			continue
		}
		if best == "" || mod.After(bestMod) {
			best = filepath.Join(dir, e.Name())
			bestMod = mod
		}
	}

	if best == "" {
		return "", fmt.Errorf("yt-dlp: downloaded file not found in %s", dir)
	}
	return best, nil
}

func isMedia(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range mediaExtensions {
		if ext == m {
			return true
		}
	}
	return false
}
