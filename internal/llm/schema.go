package llm

// BuildCardJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// structured card output as a generic map. Every recognized key is an
// optional string: a missing key becomes an empty field downstream, so
// nothing is required here. Unknown keys are rejected; SanitizeCardJSON
// strips them before validation.
func BuildCardJSONSchema() map[string]any {
	props := make(map[string]any, len(RecognizedKeys))
	for _, k := range RecognizedKeys {
		props[k] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
