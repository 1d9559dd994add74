// Package notion reads portfolio content from a Notion workspace over its
// REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/atelierfolio/atelier/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public Notion API root.
	DefaultBaseURL = "https://api.notion.com"
	// APIVersion is sent as the Notion-Version header.
	APIVersion = "2022-06-28"

	pageSize      = 100
	maxPages      = 10
	errorBodySize = 4096
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("notion api key is not configured")

// APIError is a non-2xx response from the workspace API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion status %d", e.Status)
	}
	return fmt.Sprintf("notion status %d: %s: %s", e.Status, e.Code, e.Message)
}

// Config configures the API client.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the Notion REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient builds a client. The zero Config targets the public API with
// the upstream request timeout.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.UpstreamRequest}
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		http:    httpClient,
		tracer:  otel.Tracer("github.com/atelierfolio/atelier/internal/content/notion"),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// SearchPages returns every page visible to the integration.
func (c *Client) SearchPages(ctx context.Context) ([]Page, error) {
	ctx, span := c.tracer.Start(ctx, "notion.search")
	defer span.End()

	var pages []Page
	cursor := ""
	for i := 0; i < maxPages; i++ {
		body := map[string]any{
			"filter":    map[string]string{"property": "object", "value": "page"},
			"page_size": pageSize,
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}
		var resp listResponse[Page]
		if err := c.do(ctx, http.MethodPost, "/v1/search", body, &resp); err != nil {
			recordError(span, err)
			return nil, fmt.Errorf("search pages: %w", err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	span.SetAttributes(attribute.Int("notion.pages", len(pages)))
	return pages, nil
}

// RetrievePage loads one page's properties.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (Page, error) {
	ctx, span := c.tracer.Start(ctx, "notion.page", trace.WithAttributes(attribute.String("notion.page_id", pageID)))
	defer span.End()

	var page Page
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+url.PathEscape(pageID), nil, &page); err != nil {
		recordError(span, err)
		return Page{}, fmt.Errorf("retrieve page %s: %w", pageID, err)
	}
	return page, nil
}

// BlockChildren lists the direct children of a block or page.
func (c *Client) BlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	ctx, span := c.tracer.Start(ctx, "notion.blocks", trace.WithAttributes(attribute.String("notion.block_id", blockID)))
	defer span.End()

	var blocks []Block
	cursor := ""
	for i := 0; i < maxPages; i++ {
		q := url.Values{}
		q.Set("page_size", fmt.Sprint(pageSize))
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		path := "/v1/blocks/" + url.PathEscape(blockID) + "/children?" + q.Encode()
		var resp listResponse[Block]
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			recordError(span, err)
			return nil, fmt.Errorf("list blocks %s: %w", blockID, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return blocks, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{Status: res.StatusCode}
		raw, readErr := io.ReadAll(io.LimitReader(res.Body, errorBodySize))
		if readErr == nil {
			_ = json.Unmarshal(raw, apiErr)
			apiErr.Status = res.StatusCode
		}
		return apiErr
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
