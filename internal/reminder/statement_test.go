package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinledger/vinledger/internal/settings"
)

func TestGenerateStatement(t *testing.T) {
	cfg := settings.FromMap(map[string]string{
		"business_name":   "Duka Wines",
		"currency_symbol": "KSh",
	})

	pdf, err := GenerateStatement(testDebt(), cfg)

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]), "output is a PDF document")
}

func TestGenerateStatement_MinimalDebt(t *testing.T) {
	// No phone, email, reference or branch; fields are simply omitted.
	debt := testDebt()
	debt.CustomerPhone = ""
	debt.CustomerEmail = ""
	debt.Reference = ""
	debt.BranchName = ""

	pdf, err := GenerateStatement(debt, settings.FromMap(nil))

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
