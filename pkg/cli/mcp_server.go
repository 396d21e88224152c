package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/helmwave/helmwave-lint/pkg/constants"
	"github.com/helmwave/helmwave-lint/pkg/outline"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/quickfix"
	"github.com/helmwave/helmwave-lint/pkg/validator"
)

// DocumentArgs is the input of the document tools
type DocumentArgs struct {
	Content string `json:"content" jsonschema:"the full text of a helmwave.yml file"`
}

// NewMCPServer builds an MCP server exposing the validator and outline as tools
func NewMCPServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: constants.CLIName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_helmwave",
		Description: "Validate a helmwave.yml document and return diagnostics with 0-based line/character ranges and suggested fixes",
	}, validateTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "outline_helmwave",
		Description: "List the sections, releases, repositories and hooks of a helmwave.yml document with their positions",
	}, outlineTool)

	return server
}

// RunMCPServer serves the tools over stdio until ctx is cancelled or the client disconnects
func RunMCPServer(ctx context.Context, version string) error {
	if err := NewMCPServer(version).Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

func validateTool(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[DocumentArgs]) (*mcp.CallToolResultFor[any], error) {
	content := params.Arguments.Content
	lines := parser.SplitLines(content)

	report := fileReport{Diagnostics: []reportDiagnostic{}}
	for _, d := range validator.ValidateText(content) {
		entry := reportDiagnostic{Diagnostic: d}
		if fix, ok := quickfix.Suggest(d, lines); ok {
			entry.Fix = &fix
		}
		report.Diagnostics = append(report.Diagnostics, entry)
	}

	return jsonResult(report)
}

func outlineTool(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[DocumentArgs]) (*mcp.CallToolResultFor[any], error) {
	parsed := parser.Parse(params.Arguments.Content)
	if parsed.SyntaxError != nil {
		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{&mcp.TextContent{Text: parsed.SyntaxError.Error()}},
			IsError: true,
		}, nil
	}

	symbols := outline.Build(parsed.Document, parsed.Lines)
	if symbols == nil {
		symbols = []outline.Symbol{}
	}
	return jsonResult(symbols)
}

func jsonResult(v any) (*mcp.CallToolResultFor[any], error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
