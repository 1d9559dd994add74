package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierfolio/atelier/internal/content"
)

// PortfolioListInput represents the MCP tool input for listing portfolio items.
type PortfolioListInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category filter (Projects, Thinking, Practices, Journey); case-insensitive"`
}

// PortfolioItem is one portfolio card in tool output.
type PortfolioItem struct {
	ID          string `json:"id" jsonschema:"item identifier"`
	Emoji       string `json:"emoji" jsonschema:"display emoji"`
	Title       string `json:"title" jsonschema:"item title"`
	Description string `json:"description" jsonschema:"short description"`
	Content     string `json:"content,omitempty" jsonschema:"item body"`
	Category    string `json:"category" jsonschema:"display category"`
	Type        string `json:"type,omitempty" jsonschema:"entry type"`
	URL         string `json:"url,omitempty" jsonschema:"workspace page url, if any"`
}

// PortfolioListResult represents the MCP tool output for listing portfolio items.
type PortfolioListResult struct {
	Items    []PortfolioItem `json:"items" jsonschema:"portfolio items sorted by category"`
	Total    int             `json:"total" jsonschema:"number of items returned"`
	Category string          `json:"category,omitempty" jsonschema:"category filter applied"`
	Source   string          `json:"source" jsonschema:"where items came from (notion or sample)"`
}

// PortfolioListTool defines the MCP tool schema for listing portfolio items.
func PortfolioListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "portfolio_list",
		Description: "Lists portfolio items, optionally filtered by category",
	}
}

// PortfolioListHandler lists portfolio items from source, falling back to the
// sample portfolio when the workspace is unavailable.
func PortfolioListHandler(source content.Source) mcp.ToolHandlerFor[PortfolioListInput, PortfolioListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PortfolioListInput) (*mcp.CallToolResult, PortfolioListResult, error) {
		items := content.LoadItems(ctx, source)
		result := PortfolioListResult{Source: content.ItemsSource(items)}

		if category := strings.TrimSpace(input.Category); category != "" {
			items = content.FilterByCategory(items, category)
			result.Category = content.TitleCase(category)
		}

		result.Items = make([]PortfolioItem, 0, len(items))
		for _, item := range items {
			result.Items = append(result.Items, PortfolioItem{
				ID:          item.ID,
				Emoji:       item.Emoji,
				Title:       item.Title,
				Description: item.Description,
				Content:     item.Content,
				Category:    string(item.Category),
				Type:        item.Metadata["type"],
				URL:         item.Metadata["url"],
			})
		}
		result.Total = len(result.Items)
		return &mcp.CallToolResult{}, result, nil
	}
}
