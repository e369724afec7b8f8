package errors

import (
	"strings"
	"unicode"
)

// ValidateRouteKey validates a route key supplied by external input (scenario
// files, CLI flags, inspector queries) before it is turned into a route.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Application-defined route types are not validated here; they control their
// own keys.
func ValidateRouteKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidRoute, "route key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidRoute, "route key too long (max 256 characters)")
	}

	if strings.Contains(key, "\x00") {
		return New(ErrCodeInvalidRoute, "route key contains a null byte")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoute, "route key contains invalid control characters")
		}
	}

	return nil
}

// ValidateScenarioName validates a scenario name for display and file output.
// It ensures the name is usable as a simple label without path components.
func ValidateScenarioName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScenario, "scenario name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidScenario, "scenario name cannot contain path separators")
	}

	return nil
}
