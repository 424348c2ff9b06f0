package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"autojobber-backend/internal/shared/telemetry"
)

// HTTPClient calls the external parsing service. The service is a black box:
// whatever structured object it returns is stored verbatim.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPClient constructs a client for the parsing service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{},
	}
}

// Parse uploads the file to the parsing service and decodes the result.
// Transport failures and 5xx responses map to ErrUnavailable; a 4xx response
// means the service judged the content unparseable.
func (c *HTTPClient) Parse(ctx context.Context, data []byte, mimeType, fileName string) (ParsedResume, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return ParsedResume{}, err
	}
	if _, err := part.Write(data); err != nil {
		return ParsedResume{}, err
	}
	if err := writer.Close(); err != nil {
		return ParsedResume{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/upload-resume", &body)
	if err != nil {
		return ParsedResume{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.Client.Do(req)
	if err != nil {
		return ParsedResume{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		telemetry.Error("parser.upstream_error", map[string]any{"status": resp.StatusCode})
		return ParsedResume{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return ParsedResume{}, fmt.Errorf("%w: status %d", ErrUnsupported, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ParsedResume{}, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var parsed ParsedResume
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return ParsedResume{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return parsed, nil
}
