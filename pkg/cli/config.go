package cli

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/helmwave/helmwave-lint/pkg/console"
	"github.com/helmwave/helmwave-lint/pkg/constants"
	"github.com/helmwave/helmwave-lint/pkg/parser"
)

//go:embed schemas/config_schema.json
var configSchema string

// Config holds the project settings read from .helmwave-lint.yaml
type Config struct {
	Format        string
	Patterns      []string
	FailOnWarning bool
	Debounce      time.Duration
	Concurrency   int
}

// configFile mirrors the YAML layout of the configuration file
type configFile struct {
	Format        string   `yaml:"format"`
	Patterns      []string `yaml:"patterns"`
	FailOnWarning bool     `yaml:"fail-on-warning"`
	Debounce      string   `yaml:"debounce"`
	Concurrency   int      `yaml:"concurrency"`
}

var additionalPropertyPattern = regexp.MustCompile(`additional propert(?:y|ies) '([^']+)'`)

// DefaultConfig returns the settings used when no configuration file exists
func DefaultConfig() Config {
	debounce, _ := time.ParseDuration(constants.DefaultDebounce)
	return Config{
		Format:      "text",
		Patterns:    append([]string(nil), constants.HelmwaveFilePatterns...),
		Debounce:    debounce,
		Concurrency: constants.DefaultConcurrency,
	}
}

// LoadConfig reads the configuration file at path. An empty path looks for
// .helmwave-lint.yaml in the working directory and falls back to defaults
// when it does not exist; an explicit path must exist.
func LoadConfig(path string, verbose bool) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = constants.ConfigFileName
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, console.FormatVerboseMessage("Using configuration from "+path))
	}
	return ParseConfig(path, content)
}

// ParseConfig decodes and validates configuration file content
func ParseConfig(path string, content []byte) (Config, error) {
	config := DefaultConfig()
	if strings.TrimSpace(string(content)) == "" {
		return config, nil
	}

	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		line, column, message := parser.ExtractYAMLError(err)
		return Config{}, errors.New(console.FormatError(console.SourceError{
			Position: console.SourcePosition{File: path, Line: line, Column: column},
			Type:     "error",
			Message:  "invalid YAML: " + message,
			Context:  console.ContextLines(parser.SplitLines(string(content)), line-1),
		}))
	}

	if raw == nil {
		return config, nil
	}
	if err := validateConfigSchema(raw); err != nil {
		return Config{}, locateSchemaError(path, content, err)
	}

	var file configFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if file.Format != "" {
		config.Format = file.Format
	}
	config.Patterns = append(config.Patterns, file.Patterns...)
	config.FailOnWarning = file.FailOnWarning
	if file.Debounce != "" {
		debounce, err := time.ParseDuration(file.Debounce)
		if err != nil {
			return Config{}, fmt.Errorf("invalid debounce in %s: %w", path, err)
		}
		config.Debounce = debounce
	}
	if file.Concurrency > 0 {
		config.Concurrency = file.Concurrency
	}

	return config, nil
}

// validateConfigSchema checks decoded configuration against the embedded JSON schema
func validateConfigSchema(raw any) error {
	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return fmt.Errorf("failed to parse config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	schemaURL := "https://helmwave.github.io/schemas/helmwave-lint.json"
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add config schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	// round trip through JSON so numbers and maps have the types the validator expects
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to normalize config: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("failed to normalize config: %w", err)
	}

	return schema.Validate(normalized)
}

// locateSchemaError renders the first schema violation against the file's lines
func locateSchemaError(path string, content []byte, err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	leaf := firstLeaf(validationErr)
	message := cleanSchemaMessage(leaf.Error())
	lines := parser.SplitLines(string(content))

	segments := leaf.InstanceLocation
	if len(segments) == 0 {
		if m := additionalPropertyPattern.FindStringSubmatch(message); m != nil {
			segments = []string{m[1]}
		}
	}

	line, column := 1, 1
	if pos, ok := parser.LocatePath(lines, segments...); ok {
		line, column = pos.Line+1, pos.KeyStart+1
	}

	return errors.New(strings.TrimRight(console.FormatError(console.SourceError{
		Position: console.SourcePosition{File: path, Line: line, Column: column},
		Type:     "error",
		Message:  message,
		Context:  console.ContextLines(lines, line-1),
		Hint:     "see the configuration keys accepted by " + constants.CLIName,
	}), "\n"))
}

func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}

var schemaLocationPrefix = regexp.MustCompile(`^- at '[^']*': `)

// cleanSchemaMessage drops the jsonschema headers and location prefixes from a message
func cleanSchemaMessage(message string) string {
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "jsonschema validation failed") {
			continue
		}
		return schemaLocationPrefix.ReplaceAllString(line, "")
	}
	return "schema validation failed"
}
