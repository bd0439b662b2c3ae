package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/genie-desktop/genie-backend/internal/shared"
)

// Message is one role-tagged entry in the transcript sent to the model.
type Message struct {
	Role    string
	Content string
}

// Client talks to a locally hosted Ollama backend. The model id is fixed at
// construction; callers never select a model per request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Chat submits the full transcript and blocks for one complete reply.
// Every failure mode, including a timeout, surfaces as
// shared.ErrModelInvocation; it is never retried here.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	req := chatRequest{
		Model:  c.model,
		Stream: false,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", shared.ErrModelInvocation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", shared.ErrModelInvocation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrModelInvocation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama returned status %d", shared.ErrModelInvocation, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", shared.ErrModelInvocation, err)
	}

	return chatResp.Message.Content, nil
}

// Stream submits a single prompt and returns reply fragments as the backend
// emits them. The channel always closes gracefully: a backend failure
// mid-stream is delivered as one final human-readable fragment instead of
// an error. Consumption simply stops when ctx is cancelled.
func (c *Client) Stream(ctx context.Context, prompt string) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		body, err := json.Marshal(generateRequest{
			Model:  c.model,
			Prompt: prompt,
			Stream: true,
		})
		if err != nil {
			c.emit(ctx, out, streamErrorFragment(err))
			return
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			c.emit(ctx, out, streamErrorFragment(err))
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			c.emit(ctx, out, streamErrorFragment(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.emit(ctx, out, streamErrorFragment(fmt.Errorf("ollama returned status %d", resp.StatusCode)))
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var chunk generateResponse
			if err := json.Unmarshal(line, &chunk); err != nil {
				c.emit(ctx, out, streamErrorFragment(err))
				return
			}
			if chunk.Response != "" {
				if !c.emit(ctx, out, chunk.Response) {
					return
				}
			}
			if chunk.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			c.emit(ctx, out, streamErrorFragment(err))
		}
	}()

	return out
}

func (c *Client) emit(ctx context.Context, out chan<- string, fragment string) bool {
	select {
	case out <- fragment:
		return true
	case <-ctx.Done():
		return false
	}
}

func streamErrorFragment(err error) string {
	return fmt.Sprintf("\n\n[model backend error: %v]", err)
}

// Embeddings returns the embedding vector for text, used by the recall index.
func (c *Client) Embeddings(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingsRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var embResp embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return embResp.Embedding, nil
}

func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
