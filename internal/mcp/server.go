// Package mcp exposes the scraping layer as MCP tools. It validates caller
// arguments, forwards to the scraping operations, and wraps results and
// errors into the tool protocol envelope.
package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/timjonaswechler/rust-docs-mcp-server/internal/docsrs"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	scraper   *docsrs.Scraper
}

func NewServer(scraper *docsrs.Scraper) *Server {
	s := &Server{scraper: scraper}

	mcpServer := server.NewMCPServer(
		"rust-docs-mcp-server",
		"0.2.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)
	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("search_crates",
			mcp.WithDescription("Search crates.io for Rust crates by name or keyword."),
			mcp.WithString("query",
				mcp.Description("Search query (crate name or keyword)"),
				mcp.Required(),
			),
			mcp.WithNumber("page",
				mcp.Description("Result page, starting at 1 (default 1)"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Results per page (default 10)"),
			),
		),
		s.handleSearchCrates,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_crate_details",
			mcp.WithDescription("Fetch crate metadata from crates.io: description, download count, links, and the full version list."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name (e.g., \"serde\")"),
				mcp.Required(),
			),
		),
		s.handleGetCrateDetails,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_crate_docs",
			mcp.WithDescription("Fetch the crate's documentation page from docs.rs as readable markdown. Version defaults to \"latest\"."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
			mcp.WithString("version",
				mcp.Description("Version (default: \"latest\")"),
			),
		),
		s.handleGetCrateDocs,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_type_info",
			mcp.WithDescription("Inspect one documented symbol on docs.rs: kind, description, and documentation/source URLs."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
			mcp.WithString("path",
				mcp.Description("Item page path within the crate docs (e.g., \"runtime/struct.Runtime.html\")"),
				mcp.Required(),
			),
			mcp.WithString("version",
				mcp.Description("Version (default: \"latest\")"),
			),
		),
		s.handleGetTypeInfo,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_feature_flags",
			mcp.WithDescription("List the crate's cargo feature flags from docs.rs, marking default-enabled features."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
			mcp.WithString("version",
				mcp.Description("Version (default: \"latest\")"),
			),
		),
		s.handleListFeatureFlags,
	)

	mcpServer.AddTool(
		mcp.NewTool("list_crate_versions",
			mcp.WithDescription("List published versions of a crate with yanked flags and release dates."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
		),
		s.handleListCrateVersions,
	)

	mcpServer.AddTool(
		mcp.NewTool("get_source_code",
			mcp.WithDescription("Fetch a source file from the docs.rs source view. Version defaults to \"latest\"."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
			mcp.WithString("file_path",
				mcp.Description("Source file path within the crate (e.g., \"lib.rs\")"),
				mcp.Required(),
			),
			mcp.WithString("version",
				mcp.Description("Version (default: \"latest\")"),
			),
		),
		s.handleGetSourceCode,
	)

	mcpServer.AddTool(
		mcp.NewTool("search_symbols",
			mcp.WithDescription("Search the crate's all-symbols index by case-insensitive substring match on the symbol name or qualified path."),
			mcp.WithString("crate_name",
				mcp.Description("Crate name"),
				mcp.Required(),
			),
			mcp.WithString("query",
				mcp.Description("Symbol name substring"),
				mcp.Required(),
			),
			mcp.WithString("version",
				mcp.Description("Version (default: \"latest\")"),
			),
		),
		s.handleSearchSymbols,
	)
}

func (s *Server) handleSearchCrates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	opts := docsrs.SearchOptions{Query: query}
	if page, ok := args["page"].(float64); ok {
		opts.Page = int(page)
	}
	if perPage, ok := args["per_page"].(float64); ok {
		opts.PerPage = int(perPage)
	}

	result, err := s.scraper.SearchCrates(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (s *Server) handleGetCrateDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}

	details, err := s.scraper.GetCrateDetails(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get crate details: %v", err)), nil
	}
	return jsonResult(details), nil
}

func (s *Server) handleGetCrateDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}
	version, _ := req.GetArguments()["version"].(string)

	md, err := s.scraper.GetCrateDocumentation(ctx, name, version)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get documentation: %v", err)), nil
	}
	return mcp.NewToolResultText(md), nil
}

func (s *Server) handleGetTypeInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	version, _ := args["version"].(string)

	info, err := s.scraper.GetTypeInfo(ctx, name, version, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get type info: %v", err)), nil
	}
	return jsonResult(info), nil
}

func (s *Server) handleListFeatureFlags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}
	version, _ := req.GetArguments()["version"].(string)

	flags, err := s.scraper.ListFeatureFlags(ctx, name, version)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list features: %v", err)), nil
	}
	return jsonResult(flags), nil
}

func (s *Server) handleListCrateVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}

	versions, err := s.scraper.ListCrateVersions(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list versions: %v", err)), nil
	}
	return jsonResult(versions), nil
}

func (s *Server) handleGetSourceCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}
	args := req.GetArguments()
	filePath, _ := args["file_path"].(string)
	if filePath == "" {
		return mcp.NewToolResultError("missing required parameter: file_path"), nil
	}
	version, _ := args["version"].(string)

	code, err := s.scraper.GetSourceCode(ctx, name, version, filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get source code: %v", err)), nil
	}
	return mcp.NewToolResultText(code), nil
}

func (s *Server) handleSearchSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errResult := requireCrateName(req)
	if errResult != nil {
		return errResult, nil
	}
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	version, _ := args["version"].(string)

	symbols, err := s.scraper.SearchSymbols(ctx, name, version, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("symbol search failed: %v", err)), nil
	}
	return jsonResult(symbols), nil
}

func requireCrateName(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	name, _ := req.GetArguments()["crate_name"].(string)
	if name == "" {
		return "", mcp.NewToolResultError("missing required parameter: crate_name")
	}
	return name, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}
