package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractInput() ContractInput {
	return ContractInput{
		CompanyName:     "Inversiones Delta S.A.",
		CompanyID:       "3-101-123456",
		CompanyAddress:  "San José, Costa Rica",
		LegalRepName:    "María Fernández",
		LegalRepID:      "1-0234-0567",
		LegalRepAddress: "Heredia, Costa Rica",
		LegalRepGender:  "femenino",
		GeneratedAt:     "15-Sep-2025",
	}
}

func TestGenerateSubstitutesAllFields(t *testing.T) {
	svc := NewContractService(nil, "", zerolog.Nop())

	doc, err := svc.Generate(context.Background(), contractInput())
	require.NoError(t, err)

	out := string(doc)
	for _, want := range []string{
		"Inversiones Delta S.A.",
		"3-101-123456",
		"San José, Costa Rica",
		"María Fernández",
		"1-0234-0567",
		"Heredia, Costa Rica",
		"femenino",
		"15-Sep-2025",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "{{")
}

func TestGenerateDoesNotEscapeValues(t *testing.T) {
	svc := NewContractService(nil, "", zerolog.Nop())

	in := contractInput()
	in.CompanyName = `Soto & Hijos "El Roble"`
	doc, err := svc.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `Soto & Hijos "El Roble"`)
}

func TestGenerateDefaultsGeneratedAt(t *testing.T) {
	svc := NewContractService(nil, "", zerolog.Nop())

	in := contractInput()
	in.GeneratedAt = ""
	doc, err := svc.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Firmado en la fecha ")
	assert.NotContains(t, string(doc), "Firmado en la fecha .")
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "3-101-123456", sanitizeKey("3-101-123456"))
	assert.Equal(t, "a-b-c_1", sanitizeKey("a/b c_1"))
	assert.Equal(t, strings.Repeat("-", 3), sanitizeKey("¿?!"))
}
