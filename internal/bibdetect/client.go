package bibdetect

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const detectPrompt = "Analyze this race photo and extract any visible race bib numbers. " +
	"Return only the numbers, separated by commas. If no bib numbers are visible, return 'none'."

// Client calls the Google generative-language API to read bib numbers out
// of race photos.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DetectBibNumbers submits an image and parses the model's comma-separated
// reply into a set of bib numbers. A reply of "none" means no bibs visible.
func (c *Client) DetectBibNumbers(imageData []byte, mimeType string) ([]string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	requestBody := generateRequest{
		Contents: []content{
			{
				Parts: []part{
					{Text: detectPrompt},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(imageData),
					}},
				},
			},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/models/" + c.model + ":generateContent?key=" + c.apiKey
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to detect bib numbers: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model, body: %s", string(body))
	}

	return ParseBibNumbers(result.Candidates[0].Content.Parts[0].Text), nil
}

// ParseBibNumbers turns the model's textual reply into a clean slice of
// bib numbers.
func ParseBibNumbers(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "none") {
		return nil
	}

	parts := strings.Split(text, ",")
	numbers := make([]string, 0, len(parts))
	for _, p := range parts {
		if num := strings.TrimSpace(p); num != "" {
			numbers = append(numbers, num)
		}
	}
	return numbers
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
