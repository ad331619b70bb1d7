package timeutil

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// ParseNaturalDate parses a natural language date expression into a
// local calendar day. Accepts plain date keys ("2026-03-14") as well as
// expressions like "tomorrow" or "next friday".
func ParseNaturalDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return time.Now(), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, err
	}

	return result.Time, nil
}
