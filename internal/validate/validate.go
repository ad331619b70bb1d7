// Package validate cleans family-submitted input before it is stored or
// rendered. The display draws labels verbatim on a fixed panel, so
// control characters and unbounded lengths must not survive the write
// path.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	// MaxLabelLength caps display labels in runes.
	MaxLabelLength = 120
	// MaxURLLength caps webhook endpoint URLs.
	MaxURLLength = 2048
)

// Label cleans a display label: surrounding whitespace is trimmed,
// control characters are dropped, and the result is capped at
// MaxLabelLength runes.
func Label(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(sb.String())

	runes := []rune(cleaned)
	if len(runes) > MaxLabelLength {
		cleaned = strings.TrimSpace(string(runes[:MaxLabelLength]))
	}
	return cleaned
}

// WebhookURL checks a family webhook endpoint. Home setups post to LAN
// services, so private addresses are allowed; only shape, scheme, and
// host are enforced.
func WebhookURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("webhook URL is empty")
	}
	if len(raw) > MaxURLLength {
		return fmt.Errorf("webhook URL exceeds %d characters", MaxURLLength)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("webhook URL %q must use http or https", raw)
	}
	if parsed.Hostname() == "" {
		return fmt.Errorf("webhook URL %q has no host", raw)
	}
	return nil
}
