// Package redact provides utilities for redacting sensitive information from
// strings before they are logged or returned in error responses. Medication
// requests carry health data tied to user identities, so provider URLs, user
// identifiers, and credentials must never leak through error messages.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedURLPlaceholder        = "[REDACTED_URL]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedIDPlaceholder         = "[REDACTED_ID]"
)

// Precompiled regex patterns
var (
	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Provider endpoints. Interaction lookup URLs embed medication names in
	// query strings, so the whole URL is dropped rather than scrubbed.
	urlRegex = regexp.MustCompile(`https?://[^\s'"]+`)

	// User identifiers (UUIDs)
	uuidRegex = regexp.MustCompile(
		`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`,
	)

	// Email addresses
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// File paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// Host:port fragments from transport errors
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	// All patterns and their placeholders. Order matters: URLs before
	// host:port so a full URL is not partially consumed first.
	patterns = []*regexp.Regexp{
		passwordRegex, apiKeyRegex, urlRegex, uuidRegex, emailRegex,
		unixPathRegex, stackTraceRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		passwordRegex:   RedactedCredentialPlaceholder,
		apiKeyRegex:     RedactedKeyPlaceholder,
		urlRegex:        RedactedURLPlaceholder,
		uuidRegex:       RedactedIDPlaceholder,
		emailRegex:      "[REDACTED_EMAIL]",
		unixPathRegex:   "[REDACTED_PATH]",
		stackTraceRegex: "[STACK_TRACE_REDACTED]",
		hostPortRegex:   "[REDACTED_HOST]",
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
