package infra

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/deepflow/internal/models"
	"github.com/Vovarama1992/deepflow/internal/ports"
)

// GPTClient talks to any OpenAI-compatible /chat/completions endpoint
// (DeepSeek, OpenAI, OpenRouter) in streaming mode.
type GPTClient struct {
	baseURL string
	apiKey  string
	referer string
	title   string
	client  *http.Client
}

type GPTOption func(*GPTClient)

func WithHTTPClient(c *http.Client) GPTOption {
	return func(g *GPTClient) { g.client = c }
}

// WithAttribution sets the HTTP-Referer and X-Title headers OpenRouter uses.
func WithAttribution(referer, title string) GPTOption {
	return func(g *GPTClient) {
		g.referer = referer
		g.title = title
	}
}

func NewGPTClient(baseURL, apiKey string, opts ...GPTOption) *GPTClient {
	g := &GPTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// sanitize: drop broken UTF-8
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}

type orMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type orRequest struct {
	Model       string      `json:"model"`
	Messages    []orMessage `json:"messages"`
	Temperature float64     `json:"temperature"`
	Stream      bool        `json:"stream"`
}

type orChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *orError `json:"error"`
}

type orError struct {
	Message string `json:"message"`
}

func (g *GPTClient) StreamComplete(ctx context.Context, req models.CompletionRequest) (ports.CompletionStream, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gpt: no api key configured")
	}

	body := orRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Stream:      true,
		Messages: []orMessage{
			{Role: "system", Content: sanitize(req.Instruction)},
			{Role: "user", Content: sanitize(req.Content)},
		},
	}

	j, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/chat/completions",
		bytes.NewReader(j),
	)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	if g.referer != "" {
		httpReq.Header.Set("HTTP-Referer", g.referer)
	}
	if g.title != "" {
		httpReq.Header.Set("X-Title", g.title)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gpt stream request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gpt stream http %d: %s", resp.StatusCode, errorMessage(raw))
	}

	return &sseStream{body: resp.Body, reader: bufio.NewReader(resp.Body)}, nil
}

func errorMessage(raw []byte) string {
	var out struct {
		Error *orError `json:"error"`
	}
	if json.Unmarshal(raw, &out) == nil && out.Error != nil && out.Error.Message != "" {
		return out.Error.Message
	}
	return strings.TrimSpace(string(raw))
}

// sseStream reads "data: {...}" lines until "data: [DONE]". A body that ends
// before [DONE] is a cut-off answer and surfaces as io.ErrUnexpectedEOF.
type sseStream struct {
	body      io.ReadCloser
	reader    *bufio.Reader
	done      bool
	truncated bool
}

func (s *sseStream) Recv() (string, error) {
	for !s.done {
		line, err := s.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("gpt stream read: %w", err)
		}
		eof := err != nil

		text, finished, perr := parseSSELine(line)
		if perr != nil {
			return "", perr
		}
		if finished {
			s.done = true
			return "", io.EOF
		}
		if eof {
			s.done = true
			s.truncated = true
		}
		if text != "" {
			return text, nil
		}
	}
	if s.truncated {
		return "", fmt.Errorf("gpt stream read: %w", io.ErrUnexpectedEOF)
	}
	return "", io.EOF
}

// parseSSELine returns the delta text carried by one event-stream line.
// Blank separators, comments and event: lines carry nothing.
func parseSSELine(line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "data:") {
		return "", false, nil
	}

	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "[DONE]" {
		return "", true, nil
	}

	var chunk orChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", false, fmt.Errorf("gpt stream decode: %w", err)
	}
	if chunk.Error != nil {
		return "", false, fmt.Errorf("gpt stream error: %s", chunk.Error.Message)
	}

	var sb strings.Builder
	for _, c := range chunk.Choices {
		sb.WriteString(c.Delta.Content)
	}
	return sb.String(), false, nil
}

func (s *sseStream) Close() error {
	return s.body.Close()
}
