package uischema

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// SanitizeHelpText keeps inline formatting and links and strips everything
// else, including scripts and event handlers.
func SanitizeHelpText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "code", "br", "small", "sub", "sup", "span")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
