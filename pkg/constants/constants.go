package constants

// CLIName is the binary name used in user-facing output
const CLIName = "helmwave-lint"

// DiagnosticSource tags every diagnostic produced by the validator
const DiagnosticSource = "helmwave"

// ConfigFileName is the optional project configuration file looked up in the working directory
const ConfigFileName = ".helmwave-lint.yaml"

// HelmwaveFilePatterns are the file name globs recognized as helmwave configuration files
var HelmwaveFilePatterns = []string{
	"helmwave.yml",
	"helmwave.yaml",
	"*_helmwave.yml",
	"*_helmwave.yaml",
	"*-helmwave.yml",
	"*-helmwave.yaml",
}

// DefaultConcurrency bounds how many files are validated in parallel
const DefaultConcurrency = 4

// DefaultDebounce is how long watch mode waits for edits to settle before re-validating
const DefaultDebounce = "300ms"
