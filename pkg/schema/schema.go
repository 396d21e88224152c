// Package schema holds the fixed rule tables for helmwave.yml documents.
//
// Everything in this package is initialized once at process start and only
// read afterwards, so it is safe to consult from any number of concurrent
// validations.
package schema

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Top-level section keys
const (
	KeyProject      = "project"
	KeyVersion      = "version"
	KeyRepositories = "repositories"
	KeyRegistries   = "registries"
	KeyReleases     = "releases"
	KeyMonitors     = "monitors"
	KeyLifecycle    = "lifecycle"
)

// Monitor types
const (
	MonitorTypeHTTP       = "http"
	MonitorTypePrometheus = "prometheus"
)

// HTTP status code bounds accepted in http.expected_codes
const (
	MinHTTPStatusCode = 100
	MaxHTTPStatusCode = 599
)

// TopLevelKeys lists every recognized top-level key in declaration order
var TopLevelKeys = []string{
	KeyProject,
	KeyVersion,
	KeyRepositories,
	KeyRegistries,
	KeyReleases,
	KeyMonitors,
	KeyLifecycle,
}

// LifecycleHooks lists the hook names accepted under lifecycle
var LifecycleHooks = []string{
	"pre_up",
	"post_up",
	"pre_down",
	"post_down",
	"pre_build",
	"post_build",
	"pre_rollback",
	"post_rollback",
}

// MonitorTypes lists the accepted values of monitors[].type
var MonitorTypes = []string{MonitorTypeHTTP, MonitorTypePrometheus}

// HTTPMethods lists the accepted values of monitors[].http.method
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE"}

// PendingReleaseStrategies lists the accepted values of releases[].pending_release_strategy
var PendingReleaseStrategies = []string{"rollback", "uninstall"}

// DeletionPropagations lists the accepted values of releases[].deletion_propagation
var DeletionPropagations = []string{"background", "foreground", "orphan"}

// VersionPattern matches a version constraint: an optional comparator followed by major.minor(.patch)
var VersionPattern = regexp.MustCompile(`^(>=|>|<=|<|=)?\s*\d+\.\d+(\.\d+)?`)

var formatValidator = validator.New()

// IsTopLevelKey reports whether key is a recognized top-level key
func IsTopLevelKey(key string) bool {
	return slices.Contains(TopLevelKeys, key)
}

// IsLifecycleHook reports whether name is a recognized lifecycle hook
func IsLifecycleHook(name string) bool {
	return slices.Contains(LifecycleHooks, name)
}

// IsMonitorType reports whether t is a recognized monitor type
func IsMonitorType(t string) bool {
	return slices.Contains(MonitorTypes, t)
}

// IsHTTPMethod reports whether method is an accepted HTTP monitor method
func IsHTTPMethod(method string) bool {
	return slices.Contains(HTTPMethods, method)
}

// IsPendingReleaseStrategy reports whether s is an accepted pending release strategy
func IsPendingReleaseStrategy(s string) bool {
	return slices.Contains(PendingReleaseStrategies, s)
}

// IsDeletionPropagation reports whether s is an accepted deletion propagation policy
func IsDeletionPropagation(s string) bool {
	return slices.Contains(DeletionPropagations, s)
}

// IsValidVersion reports whether v satisfies VersionPattern
func IsValidVersion(v string) bool {
	return VersionPattern.MatchString(v)
}

// IsValidURL reports whether s is an absolute URL with a scheme
func IsValidURL(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return formatValidator.Var(s, "url") == nil
}

// IsValidHost reports whether s is a registry host, optionally with a port
func IsValidHost(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return formatValidator.Var(s, "hostname_rfc1123|hostname_port") == nil
}

// IsValidStatusCode reports whether code is within the accepted HTTP status range
func IsValidStatusCode(code int) bool {
	return code >= MinHTTPStatusCode && code <= MaxHTTPStatusCode
}

// JoinValues renders an enumeration for use in diagnostic messages
func JoinValues(values []string) string {
	return strings.Join(values, ", ")
}
