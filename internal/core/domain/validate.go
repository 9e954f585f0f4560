package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MinScriptLength is the minimum script length the API accepts.
const MinScriptLength = 10

// Validate checks the configuration against the submission requirements.
// All fields are checked and every violation is collected, it does not
// stop at the first problem.
func (c ProductConfig) Validate() error {
	var violations []string

	if utf8.RuneCountInString(strings.TrimSpace(c.Script)) < MinScriptLength {
		violations = append(violations,
			fmt.Sprintf("script must be at least %d characters long", MinScriptLength))
	}
	if strings.TrimSpace(c.CreatorName) == "" {
		violations = append(violations, "creator name is required")
	}
	if len(c.MediaURLs) == 0 {
		violations = append(violations, "at least one media URL is required")
	}
	for i, raw := range c.MediaURLs {
		if !validMediaURL(raw) {
			violations = append(violations,
				fmt.Sprintf("media URL at index %d is not a valid http(s) URL: %s", i, raw))
		}
	}
	if !c.Resolution.Valid() {
		violations = append(violations,
			fmt.Sprintf("invalid resolution %q, must be one of: %s, %s, %s",
				c.Resolution, ResolutionFHD, ResolutionHD, Resolution4K))
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func validMediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
