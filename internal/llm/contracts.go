package llm

import "context"

// RecognizedKeys are the nine fixed field names every structured card is
// normalized against. Anything else in the model output is discarded.
var RecognizedKeys = []string{
	"organization",
	"department",
	"name",
	"address",
	"telephone",
	"phone",
	"fax",
	"email",
	"website",
}

// CardFields is the normalized shape we want from the LLM.
// telephone carries the office/main number; phone carries the mobile number.
type CardFields struct {
	Organization string `json:"organization"`
	Department   string `json:"department"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Telephone    string `json:"telephone"`
	Phone        string `json:"phone"`
	Fax          string `json:"fax"`
	Email        string `json:"email"`
	Website      string `json:"website"`
}

// FieldStructurer is Stage 2: raw OCR text -> attempted-JSON string.
//
// The returned string is the completion content verbatim; parsing and
// validation belong to the normalizer. Provider failures are returned as
// errors, never encoded into the string.
type FieldStructurer interface {
	StructureFields(ctx context.Context, text string) (string, error)
}
