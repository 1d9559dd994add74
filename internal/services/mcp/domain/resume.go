package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierfolio/atelier/internal/services/site/resume"
)

// ResumeGetInput represents the MCP tool input for reading the resume.
type ResumeGetInput struct {
	Format string `json:"format,omitempty" jsonschema:"resume format (markdown or json); defaults to markdown"`
}

// ResumeGetResult represents the MCP tool output for reading the resume.
type ResumeGetResult struct {
	Format      string `json:"format" jsonschema:"format of the resume field"`
	Resume      string `json:"resume" jsonschema:"resume rendered as markdown or as a JSON document"`
	Cached      bool   `json:"cached" jsonschema:"whether the resume came from the in-memory cache"`
	Source      string `json:"source" jsonschema:"where the resume content came from (notion-live or sample)"`
	LastUpdated string `json:"last_updated" jsonschema:"RFC3339 build time of the resume"`
}

// ResumeGetTool defines the MCP tool schema for reading the resume.
func ResumeGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "resume_get",
		Description: "Returns the living resume as markdown or JSON",
	}
}

// ResumeGetHandler renders the resume through cache, building it with load on
// a miss.
func ResumeGetHandler(cache *resume.Cache, load resume.Loader) mcp.ToolHandlerFor[ResumeGetInput, ResumeGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResumeGetInput) (*mcp.CallToolResult, ResumeGetResult, error) {
		if cache == nil || load == nil {
			return nil, ResumeGetResult{}, fmt.Errorf("resume is not configured")
		}
		format, ok := resume.ParseFormat(strings.TrimSpace(input.Format))
		if !ok {
			return nil, ResumeGetResult{}, fmt.Errorf("format %q is not supported; use markdown or json", input.Format)
		}

		rendered, cached, err := cache.Get(ctx, load)
		if err != nil {
			return nil, ResumeGetResult{}, fmt.Errorf("build resume: %w", err)
		}

		result := ResumeGetResult{
			Format:      string(format),
			Resume:      rendered.Markdown,
			Cached:      cached,
			Source:      rendered.Document.Source,
			LastUpdated: rendered.Document.LastUpdated.Format(time.RFC3339),
		}
		if format == resume.FormatJSON {
			data, err := json.MarshalIndent(rendered.Document, "", "  ")
			if err != nil {
				return nil, ResumeGetResult{}, fmt.Errorf("marshal resume: %w", err)
			}
			result.Resume = string(data)
		}
		return &mcp.CallToolResult{}, result, nil
	}
}
