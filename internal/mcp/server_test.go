package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/docsrs"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestHandlers_MissingRequiredArguments(t *testing.T) {
	// nil adapters are fine here: validation rejects these calls before any
	// operation runs.
	s := NewServer(docsrs.New(nil, nil))

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
	}{
		{"search without query", s.handleSearchCrates, map[string]any{}},
		{"details without crate name", s.handleGetCrateDetails, map[string]any{}},
		{"docs without crate name", s.handleGetCrateDocs, map[string]any{"version": "latest"}},
		{"type info without path", s.handleGetTypeInfo, map[string]any{"crate_name": "tokio"}},
		{"source without file path", s.handleGetSourceCode, map[string]any{"crate_name": "tokio"}},
		{"symbols without query", s.handleSearchSymbols, map[string]any{"crate_name": "tokio"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.handler(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned protocol error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Fatalf("expected tool error result, got %+v", result)
			}
		})
	}
}

func TestRequireCrateName(t *testing.T) {
	name, errResult := requireCrateName(callRequest(map[string]any{"crate_name": "serde"}))
	if errResult != nil {
		t.Fatalf("unexpected error result: %+v", errResult)
	}
	if name != "serde" {
		t.Fatalf("name = %q, want %q", name, "serde")
	}

	if _, errResult := requireCrateName(callRequest(nil)); errResult == nil {
		t.Fatal("expected error result for missing crate_name")
	}
}
