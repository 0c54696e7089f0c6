package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cardvault/internal/entity"
	"cardvault/internal/llm"
)

// Normalize turns the structurer's attempted-JSON string into a complete
// BusinessCard. Recognized keys are copied verbatim when present and
// default to the empty string when absent; no trimming or syntax checks are
// applied to phone or email values. Provenance (image name, employee) is
// attached here so the record is whole before persistence is attempted.
//
// Any parse or shape failure voids the record; the caller drops the file.
func Normalize(rawJSON string, fileName string, employeeID *uuid.UUID) (*entity.BusinessCard, error) {
	cleaned, _, err := llm.SanitizeCardJSON([]byte(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", fileName, err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildCardJSONSchema(), cleaned); err != nil {
		return nil, fmt.Errorf("normalize %s: %w", fileName, err)
	}

	var fields llm.CardFields
	if err := json.Unmarshal(cleaned, &fields); err != nil {
		return nil, fmt.Errorf("normalize %s: unmarshal fields: %w", fileName, err)
	}

	return &entity.BusinessCard{
		ImagePath:    fileName,
		Organization: fields.Organization,
		Department:   fields.Department,
		Name:         fields.Name,
		Address:      fields.Address,
		Telephone:    fields.Telephone,
		Phone:        fields.Phone,
		Fax:          fields.Fax,
		Email:        fields.Email,
		Website:      fields.Website,
		EmployeeID:   employeeID,
	}, nil
}
