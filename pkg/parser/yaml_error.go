package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// goccy/go-yaml: "[3:7] unexpected key name"
	bracketPositionPattern = regexp.MustCompile(`^\[(\d+):(\d+)\]\s*(.*)$`)
	// "yaml: line 3: column 7: message"
	lineColumnPattern = regexp.MustCompile(`yaml: line (\d+): column (\d+): (.*)$`)
	// "yaml: line 3: message"
	linePattern = regexp.MustCompile(`yaml: line (\d+): (.*)$`)
	// "yaml: unmarshal errors:\n  line 3: message"
	unmarshalLinePattern = regexp.MustCompile(`^\s*line (\d+): (.*)$`)
)

// ExtractYAMLError pulls the 1-based line and column out of a YAML parser
// error. Column defaults to 1 when the parser only reports a line, and both
// are 0 when the error carries no position at all.
func ExtractYAMLError(err error) (line int, column int, message string) {
	errStr := strings.TrimSpace(err.Error())
	firstLine, _, _ := strings.Cut(errStr, "\n")

	if m := bracketPositionPattern.FindStringSubmatch(firstLine); m != nil {
		return atoi(m[1]), atoi(m[2]), strings.TrimSpace(m[3])
	}

	if m := lineColumnPattern.FindStringSubmatch(firstLine); m != nil {
		return atoi(m[1]), atoi(m[2]), strings.TrimSpace(m[3])
	}

	if strings.HasPrefix(firstLine, "yaml: unmarshal errors:") {
		for _, errorLine := range strings.Split(errStr, "\n")[1:] {
			if m := unmarshalLinePattern.FindStringSubmatch(errorLine); m != nil {
				return atoi(m[1]), 1, strings.TrimSpace(m[2])
			}
		}
	}

	if m := linePattern.FindStringSubmatch(firstLine); m != nil {
		return atoi(m[1]), 1, strings.TrimSpace(m[2])
	}

	return 0, 0, firstLine
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
