package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// connectInMemory serves a fresh MCP server on in-memory transports and
// returns a connected client session.
func connectInMemory(t *testing.T, ctx context.Context) (*mcp.ClientSession, <-chan error) {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	server := NewServer(Config{})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), time.Second)
	defer clientCancel()

	type connectResult struct {
		session *mcp.ClientSession
		err     error
	}
	connectDone := make(chan connectResult, 1)
	go func() {
		session, err := client.Connect(clientCtx, clientTransport, nil)
		connectDone <- connectResult{session: session, err: err}
	}()

	select {
	case result := <-connectDone:
		if result.err != nil {
			t.Fatalf("connect client: %v", result.err)
		}
		return result.session, serveErr
	case <-time.After(2 * time.Second):
		t.Fatal("connect client timed out")
	}
	return nil, nil
}

func TestServeWithTransportServesAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, serveErr := connectInMemory(t, ctx)
	defer session.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServerRegistersPortfolioTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, _ := connectInMemory(t, ctx)
	defer session.Close()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"portfolio_list", "resume_get", "room_describe"}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tools = %v, want %v", names, want)
		}
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "room_describe",
		Arguments: map[string]any{"room": "#garden"},
	})
	if err != nil {
		t.Fatalf("call room_describe: %v", err)
	}
	if result.IsError {
		t.Fatalf("room_describe returned tool error: %+v", result.Content)
	}
	raw, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var described struct {
		Room struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		} `json:"room"`
	}
	if err := json.Unmarshal(raw, &described); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	if described.Room.ID != "garden" || described.Room.Color != "#9b59b6" {
		t.Fatalf("described room = %+v", described.Room)
	}

	resource, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "atelier://rooms"})
	if err != nil {
		t.Fatalf("read rooms resource: %v", err)
	}
	if len(resource.Contents) != 1 {
		t.Fatalf("resource contents = %d, want 1", len(resource.Contents))
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	if err := Run(context.Background(), Config{Transport: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestParseTransport(t *testing.T) {
	tests := []struct {
		raw     string
		want    TransportKind
		wantErr bool
	}{
		{"", TransportStdio, false},
		{"stdio", TransportStdio, false},
		{" HTTP ", TransportHTTP, false},
		{"sse", "", true},
	}
	for _, tc := range tests {
		got, err := ParseTransport(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseTransport(%q) err = %v, wantErr %v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseTransport(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestHTTPHandlerHealth(t *testing.T) {
	srv := httptest.NewServer(NewServer(Config{}).httpHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/up")
	if err != nil {
		t.Fatalf("get /up: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("status = %d body = %q", resp.StatusCode, body)
	}
}

func TestServeHTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(Config{}).serveHTTP(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveHTTP returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serveHTTP did not stop after cancel")
	}
}
