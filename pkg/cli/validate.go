package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sourcegraph/conc/pool"

	"github.com/helmwave/helmwave-lint/pkg/console"
	"github.com/helmwave/helmwave-lint/pkg/diagnostic"
	"github.com/helmwave/helmwave-lint/pkg/parser"
	"github.com/helmwave/helmwave-lint/pkg/quickfix"
	"github.com/helmwave/helmwave-lint/pkg/validator"
)

// ErrValidationFailed is returned when diagnostics severe enough to fail the
// run were found. They have already been printed.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions configures a validate run
type ValidateOptions struct {
	Paths         []string
	Format        string
	FailOnWarning bool
	Watch         bool
	Verbose       bool
	Config        Config
	Out           io.Writer
}

// FileResult holds the outcome of validating one file
type FileResult struct {
	Path        string
	Lines       []string
	Diagnostics []diagnostic.Diagnostic
	Err         error
}

// fileReport is the JSON form of a FileResult
type fileReport struct {
	File        string             `json:"file,omitempty"`
	Error       string             `json:"error,omitempty"`
	Diagnostics []reportDiagnostic `json:"diagnostics"`
}

type reportDiagnostic struct {
	diagnostic.Diagnostic
	Fix *quickfix.Fix `json:"fix,omitempty"`
}

// ValidateFile reads and validates a single file
func ValidateFile(path string) FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	text := string(content)
	return FileResult{
		Path:        path,
		Lines:       parser.SplitLines(text),
		Diagnostics: validator.ValidateText(text),
	}
}

// ValidateFiles validates files in parallel. Results keep the order of files.
func ValidateFiles(files []string, concurrency int, progress func(done, total int)) []FileResult {
	if len(files) == 0 {
		return []FileResult{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	type indexed struct {
		index  int
		result FileResult
	}

	completed := make(chan struct{}, len(files))
	p := pool.NewWithResults[indexed]().WithMaxGoroutines(concurrency)
	for i, file := range files {
		p.Go(func() indexed {
			defer func() { completed <- struct{}{} }()
			return indexed{index: i, result: ValidateFile(file)}
		})
	}

	if progress != nil {
		for done := 1; done <= len(files); done++ {
			<-completed
			progress(done, len(files))
		}
	}

	results := make([]FileResult, len(files))
	for _, r := range p.Wait() {
		results[r.index] = r.result
	}
	return results
}

// RunValidate validates the files selected by opts and prints the results
func RunValidate(opts ValidateOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = opts.Config.Format
	}
	if opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("invalid format '%s'. Must be 'text' or 'json'", opts.Format)
	}

	files, err := FindHelmwaveFiles(opts.Paths, opts.Config.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 && !opts.Watch {
		return fmt.Errorf("no helmwave files found in %v", opts.Paths)
	}

	if opts.Verbose {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Found %d helmwave files to validate", len(files))))
		if len(files) > 0 {
			fmt.Fprintln(os.Stderr, console.FormatListHeader("Files"))
			for _, file := range files {
				fmt.Fprintln(os.Stderr, console.FormatListItem(console.ToRelativePath(file)))
			}
		}
	}

	spinner := console.NewSpinner("Validating helmwave files...")
	if opts.Format == "text" {
		spinner.Start()
	}
	results := ValidateFiles(files, opts.Config.Concurrency, func(done, total int) {
		spinner.UpdateMessage(fmt.Sprintf("Validated %d/%d files", done, total))
	})
	spinner.Stop()

	if err := printResults(opts, results); err != nil {
		return err
	}

	if opts.Watch {
		return nil
	}
	if failed(results, opts.FailOnWarning || opts.Config.FailOnWarning) {
		return ErrValidationFailed
	}
	return nil
}

func printResults(opts ValidateOptions, results []FileResult) error {
	if opts.Format == "json" {
		return writeJSON(opts.Out, results)
	}
	writeText(opts.Out, results, opts.Verbose)
	return nil
}

// failed reports whether results contain errors, or warnings when they count
func failed(results []FileResult, failOnWarning bool) bool {
	for _, r := range results {
		if r.Err != nil || diagnostic.HasErrors(r.Diagnostics) {
			return true
		}
		if failOnWarning && diagnostic.Count(r.Diagnostics, diagnostic.SeverityWarning) > 0 {
			return true
		}
	}
	return false
}

func writeText(out io.Writer, results []FileResult, verbose bool) {
	var errorCount, warningCount int
	rows := make([][]string, 0, len(results))

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(out, console.FormatErrorMessage(r.Err.Error()))
			errorCount++
			continue
		}

		for _, d := range r.Diagnostics {
			hint := ""
			if fix, ok := quickfix.Suggest(d, r.Lines); ok {
				hint = fix.Title
			}
			fmt.Fprintln(out, console.FormatError(console.FromDiagnostic(r.Path, d, r.Lines, hint)))
		}

		fileErrors := diagnostic.Count(r.Diagnostics, diagnostic.SeverityError)
		fileWarnings := diagnostic.Count(r.Diagnostics, diagnostic.SeverityWarning)
		errorCount += fileErrors
		warningCount += fileWarnings
		rows = append(rows, []string{console.ToRelativePath(r.Path), fmt.Sprint(fileErrors), fmt.Sprint(fileWarnings)})
	}

	if verbose && len(rows) > 1 {
		fmt.Fprint(out, console.RenderTable(console.TableConfig{
			Title:     "Validation Summary",
			Headers:   []string{"File", "Errors", "Warnings"},
			Rows:      rows,
			ShowTotal: true,
			TotalRow:  []string{"TOTAL", fmt.Sprint(errorCount), fmt.Sprint(warningCount)},
		}))
	}

	switch {
	case errorCount == 0 && warningCount == 0:
		fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("%d helmwave files are valid", len(results))))
	default:
		fmt.Fprintln(out, console.FormatCountMessage(fmt.Sprintf("%d errors, %d warnings in %d files", errorCount, warningCount, len(results))))
	}
}

func writeJSON(out io.Writer, results []FileResult) error {
	reports := make([]fileReport, 0, len(results))
	for _, r := range results {
		report := fileReport{File: r.Path, Diagnostics: []reportDiagnostic{}}
		if r.Err != nil {
			report.Error = r.Err.Error()
		}
		for _, d := range r.Diagnostics {
			entry := reportDiagnostic{Diagnostic: d}
			if fix, ok := quickfix.Suggest(d, r.Lines); ok {
				entry.Fix = &fix
			}
			report.Diagnostics = append(report.Diagnostics, entry)
		}
		reports = append(reports, report)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
