package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelierfolio/atelier/internal/scene/room"
)

// RoomsResourceURI addresses the room registry resource.
const RoomsResourceURI = "atelier://rooms"

// RoomDescribeInput represents the MCP tool input for describing a room.
type RoomDescribeInput struct {
	Room string `json:"room" jsonschema:"room id or link text such as garden, #practices or [[cases]]"`
}

// RoomDescribeResult represents the MCP tool output for describing a room.
type RoomDescribeResult struct {
	Room room.Description `json:"room" jsonschema:"registry entry for the room"`
}

// RoomsPayload is the body of the room registry resource.
type RoomsPayload struct {
	Entry room.ID            `json:"entry"`
	Order []room.ID          `json:"order"`
	Rooms []room.Description `json:"rooms"`
}

// RoomDescribeTool defines the MCP tool schema for describing a room.
func RoomDescribeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "room_describe",
		Description: "Describes one room: mood profile, placement, breadcrumb trail and neighbours",
	}
}

// RoomDescribeHandler resolves input.Room and describes it.
func RoomDescribeHandler() mcp.ToolHandlerFor[RoomDescribeInput, RoomDescribeResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RoomDescribeInput) (*mcp.CallToolResult, RoomDescribeResult, error) {
		id, ok := room.Resolve(strings.Trim(strings.TrimSpace(input.Room), "[]"))
		if !ok {
			return nil, RoomDescribeResult{}, fmt.Errorf("room %q does not exist", input.Room)
		}
		d, _ := room.Describe(id)
		return &mcp.CallToolResult{}, RoomDescribeResult{Room: d}, nil
	}
}

// RoomsResource defines the MCP resource for the room registry.
func RoomsResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         RoomsResourceURI,
		Name:        "rooms",
		Description: "Every registered room with its profile, placement and links",
		MIMEType:    "application/json",
	}
}

// RoomsResourceHandler serves the room registry as JSON.
func RoomsResourceHandler() mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := RoomsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != RoomsResourceURI {
			return nil, fmt.Errorf("resource %q is not the room registry", uri)
		}

		data, err := json.MarshalIndent(RoomsPayload{
			Entry: room.Entry,
			Order: room.Order(),
			Rooms: room.DescribeAll(),
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal rooms: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
