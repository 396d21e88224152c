package validator

import (
	"fmt"

	"github.com/helmwave/helmwave-lint/pkg/schema"
)

// Message texts are matched by quick-fix tooling; change them with care.
const (
	msgMissingProject      = "Missing required field: project"
	msgEmptyProject        = "project must not be empty"
	msgProjectNotString    = "project must be a string"
	msgInvalidVersion      = `Invalid version format. Expected semver with optional operator (e.g., ">=0.30.0")`
	msgInvalidRepoURL      = "Invalid repository URL format"
	msgInvalidMonitorURL   = "Invalid monitor URL format"
	msgInvalidRegistryHost = "Invalid registry host format"
	msgLifecycleNotObject  = "lifecycle must be an object"
)

func invalidValueMessage(label, value string, allowed []string) string {
	return fmt.Sprintf("Invalid %s: '%s'. Valid values are: %s", label, value, schema.JoinValues(allowed))
}

func unknownTopLevelKeyMessage(key string) string {
	return fmt.Sprintf("Unknown top-level key: '%s'. Valid keys are: %s", key, schema.JoinValues(schema.TopLevelKeys))
}

func unknownLifecycleHookMessage(hook string) string {
	return fmt.Sprintf("Unknown lifecycle hook: '%s'. Valid hooks are: %s", hook, schema.JoinValues(schema.LifecycleHooks))
}
