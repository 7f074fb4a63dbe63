// Package assistant wraps the remote text-generation service behind the
// thread/run/poll surface the bot depends on: append a message to a
// conversation, start a generation run for a persona, poll until it
// completes, and read back the newest message.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openai.com/v1"

const defaultHTTPTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("assistant client: api key is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

// CreateThread opens a fresh conversation. A new thread is opened every day
// to keep the context window from growing without bound.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var parsed struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/threads", nil, &parsed); err != nil {
		return "", fmt.Errorf("create thread failed: %w", err)
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return "", fmt.Errorf("create thread failed: response missing id")
	}
	return parsed.ID, nil
}

// AddMessage appends a user turn to the thread.
func (c *Client) AddMessage(ctx context.Context, threadID, content string) error {
	body := map[string]string{
		"role":    "user",
		"content": content,
	}
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/messages", body, nil); err != nil {
		return fmt.Errorf("add message failed: thread=%s %w", threadID, err)
	}
	return nil
}

// CreateRun starts a generation run for the given assistant on the thread
// and returns the run id to poll.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (string, error) {
	body := map[string]string{"assistant_id": assistantID}
	var parsed struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs", body, &parsed); err != nil {
		return "", fmt.Errorf("create run failed: thread=%s assistant=%s %w", threadID, assistantID, err)
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return "", fmt.Errorf("create run failed: response missing id")
	}
	return parsed.ID, nil
}

// GetRun reports the current status of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (string, error) {
	var parsed struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &parsed); err != nil {
		return "", fmt.Errorf("get run failed: thread=%s run=%s %w", threadID, runID, err)
	}
	return parsed.Status, nil
}

// LatestMessageText returns the text of the newest message in the thread.
// The service lists messages newest-first.
func (c *Client) LatestMessageText(ctx context.Context, threadID string) (string, error) {
	var parsed struct {
		Data []struct {
			Content []struct {
				Type string `json:"type"`
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages?order=desc&limit=1", nil, &parsed); err != nil {
		return "", fmt.Errorf("list messages failed: thread=%s %w", threadID, err)
	}
	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("list messages failed: thread=%s is empty", threadID)
	}
	for _, part := range parsed.Data[0].Content {
		if part.Type == "text" {
			return part.Text.Value, nil
		}
	}
	return "", fmt.Errorf("list messages failed: thread=%s latest message has no text content", threadID)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode failed: %w (body=%s)", err, strings.TrimSpace(string(raw)))
	}
	return nil
}
