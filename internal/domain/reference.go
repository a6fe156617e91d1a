package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	pageHexPattern    = regexp.MustCompile(`(?:^|[^0-9A-Za-z])([0-9a-fA-F]{32})(?:[^0-9A-Za-z]|$)`)
	pageDashedPattern = regexp.MustCompile(`(?:^|[^0-9A-Za-z])([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(?:[^0-9A-Za-z]|$)`)
	archivesPattern   = regexp.MustCompile(`/archives/([A-Z0-9]+)`)
)

// NormalizePageID accepts a bare 32-hex id, a dashed UUID, or a page URL
// containing either, and returns the lower-case dashed form.
func NormalizePageID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", NewValidationError("page_id", "Missing 'page_id' (copy the hex id from the Notion page URL).")
	}

	// The id must stand alone. A longer alphanumeric run is some other identifier.
	var candidate string
	if match := pageHexPattern.FindStringSubmatch(raw); match != nil {
		candidate = match[1]
	} else if match := pageDashedPattern.FindStringSubmatch(raw); match != nil {
		candidate = match[1]
	}
	if candidate == "" {
		return "", NewValidationError("page_id", "invalid page_id format")
	}

	parsed, err := uuid.Parse(candidate)
	if err != nil {
		return "", NewValidationError("page_id", "invalid page_id format")
	}

	return parsed.String(), nil
}

// SplitRepo parses an owner/name repository reference. Both parts must be
// single path segments.
func SplitRepo(raw string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || !isPathSegment(owner) || !isPathSegment(name) {
		return "", "", NewValidationError("repo", "Missing or invalid 'repo' (expected owner/name).")
	}

	return owner, name, nil
}

func isPathSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\")
}

// NormalizeChannelRef extracts the channel id from a pasted channel URL and
// otherwise returns the trimmed reference unchanged.
func NormalizeChannelRef(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if match := archivesPattern.FindStringSubmatch(raw); match != nil {
		return match[1]
	}

	return raw
}
