package together

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// imageModel is the only model this service generates with.
	imageModel = "black-forest-labs/FLUX.1-schnell-Free"

	defaultWidth  = 432
	defaultHeight = 768
)

// Client calls the Together image generations API. A single synchronous
// request either yields an image URL or fails; there is no retry.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(apiKey, baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type generateResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Generate requests one image for the prompt and returns its URL. Width
// and height fall back to the fixed output dimensions when zero.
func (c *Client) Generate(ctx context.Context, prompt string, width, height int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	body, err := json.Marshal(generateRequest{
		Model:  imageModel,
		Prompt: prompt,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	endpoint := c.baseURL + "/v1/images/generations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post together: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		if c.log != nil {
			c.log.Error("together generation failed", "status", resp.StatusCode, "body", truncateBody(rawBody))
		}
		return "", fmt.Errorf("together error: status=%d body=%s", resp.StatusCode, truncateBody(rawBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(rawBody, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w (body=%s)", err, truncateBody(rawBody))
	}
	if len(genResp.Data) == 0 || genResp.Data[0].URL == "" {
		return "", fmt.Errorf("empty image url in response")
	}

	if c.log != nil {
		c.log.Info("together image generated", "model", imageModel)
	}
	return genResp.Data[0].URL, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
