package infra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vovarama1992/deepflow/pkg/executor"
)

// WhisperTranscriber drives the openai-whisper command line tool.
type WhisperTranscriber struct {
	exec          executor.Executor
	binary        string
	language      string
	initialPrompt string
	converter     TextConverter
}

// TextConverter post-processes a finished transcript.
type TextConverter interface {
	Convert(text string) (string, error)
}

type WhisperOption func(*WhisperTranscriber)

func WithConverter(c TextConverter) WhisperOption {
	return func(w *WhisperTranscriber) { w.converter = c }
}

func NewWhisperTranscriber(exec executor.Executor, binary, language, initialPrompt string, opts ...WhisperOption) *WhisperTranscriber {
	if binary == "" {
		binary = "whisper"
	}
	w := &WhisperTranscriber{
		exec:          exec,
		binary:        binary,
		language:      language,
		initialPrompt: initialPrompt,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, filePath, modelSize string) (string, error) {
	outDir, err := os.MkdirTemp("", "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		filePath,
		"--model", modelSize,
		"--output_format", "txt",
		"--output_dir", outDir,
	}
	if w.language != "" {
		args = append(args, "--language", w.language)
	}
	if w.initialPrompt != "" {
		args = append(args, "--initial_prompt", w.initialPrompt)
	}

	if _, err := w.exec.Execute(ctx, w.binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	txt, err := os.ReadFile(filepath.Join(outDir, base+".txt"))
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	if w.converter == nil {
		return string(txt), nil
	}
	return w.converter.Convert(string(txt))
}
