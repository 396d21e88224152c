package diagnostic

// Collector accumulates diagnostics in the order they are reported.
// Nothing is deduplicated or filtered. A Collector belongs to a single
// validation pass and is not safe for concurrent use.
type Collector struct {
	diagnostics []Diagnostic
}

// Add appends diagnostics in order
func (c *Collector) Add(diagnostics ...Diagnostic) {
	c.diagnostics = append(c.diagnostics, diagnostics...)
}

// AddError appends an error diagnostic
func (c *Collector) AddError(r Range, message string) {
	c.Add(Error(r, message))
}

// AddWarning appends a warning diagnostic
func (c *Collector) AddWarning(r Range, message string) {
	c.Add(Warning(r, message))
}

// Diagnostics returns a copy of the collected diagnostics in report order
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Count returns how many diagnostics have the given severity
func Count(diagnostics []Diagnostic, severity Severity) int {
	n := 0
	for _, d := range diagnostics {
		if d.Severity == severity {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is an error
func HasErrors(diagnostics []Diagnostic) bool {
	return Count(diagnostics, SeverityError) > 0
}
