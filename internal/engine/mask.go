package engine

import (
	"encoding/json"
	"regexp"
)

const redactedPlaceholder = "***"

// fullyMaskedFields and cardNumberFields are JSON field names masked
// wherever they appear in a request/response body, regardless of
// nesting depth, per spec §4.3 step 5: "masking fields matching a
// configured set of PCI/PII paths (card number except last-4, CVV, full
// names, emails)". Every field in fullyMaskedFields is fully replaced; a
// string in a cardNumberFields field keeps its last 4 digits when it is
// a 12-19 digit number and is fully replaced otherwise.
var fullyMaskedFields = map[string]bool{
	"cvv":            true,
	"cvc":            true,
	"card_cvv":       true,
	"password":       true,
	"api_key":        true,
	"api_secret":     true,
	"secret":         true,
	"full_name":      true,
	"cardholder_name": true,
	"email":          true,
	"authorization":  true,
}

var cardNumberFields = map[string]bool{
	"card_number": true,
	"pan":         true,
	"number":      true,
}

var panLike = regexp.MustCompile(`^\d{12,19}$`)

// MaskJSON returns a copy of a JSON document with PCI/PII fields masked
// in place, for structured logging (spec §4.3 step 5, §8.3). Invalid
// JSON is returned as a single fixed placeholder rather than risking an
// unmasked raw dump.
func MaskJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []byte(`"` + redactedPlaceholder + `"`)
	}
	masked := maskValue(doc)
	out, err := json.Marshal(masked)
	if err != nil {
		return []byte(`"` + redactedPlaceholder + `"`)
	}
	return out
}

func maskValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			switch {
			case fullyMaskedFields[k]:
				out[k] = redactedPlaceholder
			case cardNumberFields[k]:
				if s, ok := val.(string); ok {
					if panLike.MatchString(s) {
						out[k] = redactedPlaceholder + s[len(s)-4:]
					} else {
						out[k] = redactedPlaceholder
					}
					continue
				}
				out[k] = maskValue(val)
			default:
				out[k] = maskValue(val)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = maskValue(val)
		}
		return out
	default:
		return v
	}
}

// MaskHeaders redacts the value of any header whose name suggests it
// carries a credential, leaving non-sensitive headers (Content-Type,
// correlation id) visible for debugging.
func MaskHeaders(headers map[string]string) map[string]string {
	sensitive := map[string]bool{
		"authorization":   true,
		"x-api-key":       true,
		"x-api-secret":    true,
		"x-key1":          true,
		"cookie":          true,
		"proxy-authorization": true,
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if sensitive[lower(k)] {
			out[k] = redactedPlaceholder
			continue
		}
		out[k] = v
	}
	return out
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
