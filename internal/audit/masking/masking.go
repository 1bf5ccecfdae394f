// Package masking redacts tenant personal data before it is written to audit metadata.
package masking

import "strings"

const maskToken = "****"

var personalKeys = []string{"phone", "identity", "email", "token", "secret"}

// MaskValue keeps the last four characters of value.
func MaskValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return maskToken
	}
	return maskToken + trimmed[len(trimmed)-4:]
}

// MaskPersonal returns a copy of metadata with string values under personal
// keys masked. Nested maps are walked.
func MaskPersonal(metadata map[string]any) map[string]any {
	if len(metadata) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		switch cast := value.(type) {
		case map[string]any:
			out[key] = MaskPersonal(cast)
		case string:
			if isPersonal(key) {
				out[key] = MaskValue(cast)
			} else {
				out[key] = cast
			}
		default:
			out[key] = value
		}
	}
	return out
}

func isPersonal(key string) bool {
	key = strings.ToLower(key)
	for _, needle := range personalKeys {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}
