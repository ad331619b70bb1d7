package logging

import (
	"regexp"
	"strings"
)

const (
	// MaskChar is the character used for masking.
	MaskChar = "*"
	// URLMaskLength is how many characters to show before masking URLs.
	URLMaskLength = 30
	// DefaultMaskLength is how many mask characters to show.
	DefaultMaskLength = 3
)

// SensitiveFields contains field names that should be masked.
var SensitiveFields = map[string]bool{
	"token":         true,
	"secret":        true,
	"password":      true,
	"api_key":       true,
	"apikey":        true,
	"auth":          true,
	"authorization": true,
	"bearer":        true,
	"credential":    true,
}

// urlPattern matches HTTP(S) URLs.
var urlPattern = regexp.MustCompile(`https?://[^\s"']+`)

// MaskURL masks a URL, showing only the first URLMaskLength characters.
// Webhook URLs often carry secrets in their path.
func MaskURL(url string) string {
	if len(url) <= URLMaskLength {
		return url
	}
	return url[:URLMaskLength] + strings.Repeat(MaskChar, DefaultMaskLength)
}

// MaskValue masks a sensitive value completely.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	return strings.Repeat(MaskChar, min(len(value), 8))
}

// IsSensitiveField checks if a field name indicates sensitive data.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(fieldName)

	if SensitiveFields[lower] {
		return true
	}

	for keyword := range SensitiveFields {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// MaskString scans a string for URLs and masks them.
func MaskString(s string) string {
	return urlPattern.ReplaceAllStringFunc(s, func(url string) string {
		// Don't mask localhost URLs
		if strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1") {
			return url
		}
		return MaskURL(url)
	})
}

// MaskSensitiveData masks sensitive values in a string map.
func MaskSensitiveData(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}

	result := make(map[string]string, len(m))
	for key, value := range m {
		if IsSensitiveField(key) {
			result[key] = "***"
		} else {
			result[key] = value
		}
	}
	return result
}
