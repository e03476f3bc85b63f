package transcode

import (
	"regexp"
	"strings"
)

// Issue is a validation problem reported against a field path.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// FieldMessages collects the messages that belong to path or to one of its
// direct array elements (path.N). Messages are joined with ". " and the result
// ends with a period. No matching issue yields an empty string.
func FieldMessages(path string, issues []Issue) string {
	if len(issues) == 0 {
		return ""
	}
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(path) + `(\.\d+)?$`)

	var messages []string
	for _, issue := range issues {
		if pattern.MatchString(issue.Path) {
			messages = append(messages, issue.Message)
		}
	}
	if len(messages) == 0 {
		return ""
	}
	return strings.Join(messages, ". ") + "."
}
