package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/helmwave/helmwave-lint/pkg/console"
	"github.com/helmwave/helmwave-lint/pkg/outline"
	"github.com/helmwave/helmwave-lint/pkg/parser"
)

// PrintOutline prints the symbol tree of a helmwave file as a table or as JSON
func PrintOutline(out io.Writer, path, format string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := parser.Parse(string(content))
	if result.SyntaxError != nil {
		return fmt.Errorf("cannot outline %s: %w", path, result.SyntaxError)
	}
	symbols := outline.Build(result.Document, result.Lines)

	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(symbols); err != nil {
			return fmt.Errorf("failed to encode outline: %w", err)
		}
		return nil
	}

	var rows [][]string
	appendSymbols(&rows, symbols, 0)
	fmt.Fprint(out, console.RenderTable(console.TableConfig{
		Title:   console.ToRelativePath(path),
		Headers: []string{"Symbol", "Kind", "Detail", "Line"},
		Rows:    rows,
	}))
	return nil
}

func appendSymbols(rows *[][]string, symbols []outline.Symbol, depth int) {
	for _, s := range symbols {
		*rows = append(*rows, []string{
			strings.Repeat("  ", depth) + s.Name,
			string(s.Kind),
			s.Detail,
			fmt.Sprint(s.Range.Start.Line + 1),
		})
		appendSymbols(rows, s.Children, depth+1)
	}
}
