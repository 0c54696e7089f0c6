package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMissingKeysDefaultToEmpty(t *testing.T) {
	eid := uuid.New()
	raw := `{"organization":"Acme Corp","name":"John Doe","telephone":"03-1234-5678"}`

	card, err := Normalize(raw, "card.jpg", &eid)
	require.NoError(t, err)

	require.Equal(t, "Acme Corp", card.Organization)
	require.Equal(t, "John Doe", card.Name)
	require.Equal(t, "03-1234-5678", card.Telephone)
	// Missing keys become empty strings, never absent.
	require.Equal(t, "", card.Fax)
	require.Equal(t, "", card.Phone)
	require.Equal(t, "", card.Email)
	require.Equal(t, "card.jpg", card.ImagePath)
	require.Equal(t, &eid, card.EmployeeID)
}

func TestNormalizeCopiesValuesVerbatim(t *testing.T) {
	// No trimming or format validation on phone/email values.
	raw := `{"telephone":"  03 (1234) 5678  ","email":"not-an-email"}`
	card, err := Normalize(raw, "card.jpg", nil)
	require.NoError(t, err)
	require.Equal(t, "  03 (1234) 5678  ", card.Telephone)
	require.Equal(t, "not-an-email", card.Email)
	require.Nil(t, card.EmployeeID)
}

func TestNormalizeDropsUnknownKeysAndNulls(t *testing.T) {
	raw := `{"organization":"Acme","confidence":0.9,"notes":["x"],"fax":null}`
	card, err := Normalize(raw, "card.jpg", nil)
	require.NoError(t, err)
	require.Equal(t, "Acme", card.Organization)
	require.Equal(t, "", card.Fax)
}

func TestNormalizeRejectsNonJSON(t *testing.T) {
	_, err := Normalize("Error processing the image.", "card.jpg", nil)
	require.Error(t, err)
}

func TestNormalizeRejectsNonObjectJSON(t *testing.T) {
	_, err := Normalize(`["organization","Acme"]`, "card.jpg", nil)
	require.Error(t, err)
}

func TestNormalizeTieBreakPlacement(t *testing.T) {
	// Structured output places the office number in telephone and the mobile
	// number in phone; normalization must not swap them.
	raw := `{"telephone":"03-1234-5678","phone":"090-8765-4321"}`
	card, err := Normalize(raw, "card.jpg", nil)
	require.NoError(t, err)
	require.Equal(t, "03-1234-5678", card.Telephone)
	require.Equal(t, "090-8765-4321", card.Phone)
}
