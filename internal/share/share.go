// Package share builds and parses the client-facing share links. A share link
// is the only generated artifact with a fixed format:
// <origin>?view_project=<id>.
package share

import (
	"net/url"
	"strings"
)

// Param is the only query parameter the application recognizes.
const Param = "view_project"

// Link builds the shareable read-only URL for a project.
func Link(origin, projectID string) string {
	return strings.TrimRight(origin, "/") + "?" + Param + "=" + url.QueryEscape(projectID)
}

// ProjectID extracts the project id from a share link. It reports false when
// the value is not a URL carrying a non-empty view_project parameter.
func ProjectID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	id := u.Query().Get(Param)
	if id == "" {
		return "", false
	}
	return id, true
}
