// Package emotionml is a client for the remote speech-emotion ML
// service. The service is an external collaborator: audio goes in, an
// emotion score vector, emoji suggestions, and a transcription come out.
package emotionml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultTimeout bounds a single analysis call. Model inference is slow
// but the backend must not hang a request forever.
const DefaultTimeout = 60 * time.Second

// EmotionScore is one ranked prediction of the classifier.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Analysis is the result of analyzing one recording.
type Analysis struct {
	Transcription   string         `json:"transcription"`
	EmotionScores   []EmotionScore `json:"emotionScores"`
	SuggestedEmojis []string       `json:"suggestedEmojis"`
}

// analyzeResponse is the ML service's wire envelope.
type analyzeResponse struct {
	Success         bool           `json:"success"`
	Error           string         `json:"error"`
	Transcription   string         `json:"transcription"`
	EmotionScores   []EmotionScore `json:"emotionScores"`
	SuggestedEmojis []string       `json:"suggestedEmojis"`
}

// Client represents an emotion ML service client
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient creates a new emotion ML service client
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Analyze submits the audio file at audioPath for emotion analysis.
func (c *Client) Analyze(ctx context.Context, audioPath, language string) (*Analysis, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	url := fmt.Sprintf("%s/analyze", c.URL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion ml request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded analyzeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode ml response: %w", err)
	}

	if resp.StatusCode >= 400 || !decoded.Success {
		if decoded.Error != "" {
			return nil, fmt.Errorf("emotion ml error: %s", decoded.Error)
		}
		return nil, fmt.Errorf("emotion ml error: status %d", resp.StatusCode)
	}

	return &Analysis{
		Transcription:   decoded.Transcription,
		EmotionScores:   decoded.EmotionScores,
		SuggestedEmojis: decoded.SuggestedEmojis,
	}, nil
}

// Health probes the ML service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/health", c.URL), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("emotion ml unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emotion ml unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
