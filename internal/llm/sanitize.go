package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SanitizeCardJSON
// - Fails if raw is not a JSON object (the caller treats that as a parse failure)
// - Removes keys outside the recognized set (strict additionalProperties friendliness)
// - Drops nulls
// - Coerces stray numbers to strings (models occasionally emit bare phone numbers)
// Field values are otherwise copied verbatim; no trimming or format checks.
func SanitizeCardJSON(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	recognized := make(map[string]struct{}, len(RecognizedKeys))
	for _, k := range RecognizedKeys {
		recognized[k] = struct{}{}
	}

	var dropped []string
	for k, v := range m {
		if _, ok := recognized[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case string:
			// keep verbatim
		case float64:
			m[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			m[k] = fmt.Sprintf("%t", t)
		default:
			// arrays/objects have no place in a flat card
			delete(m, k)
			dropped = append(dropped, k+"(non-scalar)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, dropped, nil
}
