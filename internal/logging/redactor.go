package logging

import (
	"os"
	"regexp"
	"strings"
)

var segmentSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// redactor hides user identity in log key-value pairs. Values of user name
// keys are replaced and the home directory prefix of path values becomes "~",
// so desktop paths can be logged without leaking the account name.
type redactor struct {
	home          string
	sensitiveKeys map[string]bool
}

func newRedactor() *redactor {
	home, _ := os.UserHomeDir()
	return newRedactorForHome(home)
}

func newRedactorForHome(home string) *redactor {
	return &redactor{
		home:          strings.TrimRight(home, `/\`),
		sensitiveKeys: map[string]bool{"user": true, "username": true},
	}
}

// redact returns a copy of pairs (flattened as [k1, v1, k2, v2, ...]) with
// sensitive values replaced. Odd trailing elements are kept as is.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = "[REDACTED]"
			continue
		}
		if s, ok := result[i+1].(string); ok {
			result[i+1] = r.redactPath(s)
		}
	}
	return result
}

// isSensitive reports whether any non-alphanumeric separated segment of key
// names a user identity.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplitter.Split(strings.ToLower(key), -1) {
		if r.sensitiveKeys[part] {
			return true
		}
	}
	return false
}

func (r *redactor) redactPath(value string) string {
	if r.home == "" || len(value) < len(r.home) {
		return value
	}
	if !strings.EqualFold(value[:len(r.home)], r.home) {
		return value
	}
	rest := value[len(r.home):]
	if rest != "" && rest[0] != '/' && rest[0] != '\\' {
		return value
	}
	return "~" + rest
}
