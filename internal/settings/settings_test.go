package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMap_Defaults(t *testing.T) {
	s := FromMap(map[string]string{})

	assert.Equal(t, 587, s.Port)
	assert.True(t, s.RequireTLS, "require_tls defaults on")
	assert.False(t, s.Secure)
	assert.False(t, s.AllowInvalidTLS)
	assert.False(t, s.AttachPDF)
	assert.Equal(t, "KSh", s.CurrencySymbol)
}

func TestFromMap_ParsesValues(t *testing.T) {
	s := FromMap(map[string]string{
		"smtp_host":              " smtp.example.com ",
		"smtp_port":              "465",
		"smtp_username":          "mailer",
		"smtp_password":          "secret",
		"smtp_secure":            "true",
		"smtp_require_tls":       "0",
		"smtp_allow_invalid_tls": "yes",
		"smtp_from_name":         "Duka Wines",
		"smtp_from_email":        "billing@example.com",
		"smtp_reply_to":          "owner@example.com",
		"email_attach_pdf":       "1",
		"currency_symbol":        "USD",
		"business_name":          "Duka Wines",
	})

	assert.Equal(t, "smtp.example.com", s.Host)
	assert.Equal(t, 465, s.Port)
	assert.Equal(t, "mailer", s.Username)
	assert.Equal(t, "secret", s.Password)
	assert.True(t, s.Secure)
	assert.False(t, s.RequireTLS)
	assert.True(t, s.AllowInvalidTLS)
	assert.True(t, s.AttachPDF)
	assert.Equal(t, "USD", s.CurrencySymbol)
	assert.Equal(t, "Duka Wines", s.BusinessName)
}

func TestFromMap_BadPortFallsBack(t *testing.T) {
	s := FromMap(map[string]string{"smtp_port": "not-a-port"})
	assert.Equal(t, 587, s.Port)
}

func TestMissingTransportFields(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]string
		missing []string
	}{
		{
			name: "nothing configured",
			raw:  map[string]string{},
			missing: []string{
				"SMTP host", "SMTP username", "SMTP password",
			},
		},
		{
			name: "only host",
			raw:  map[string]string{"smtp_host": "smtp.example.com"},
			missing: []string{
				"SMTP username", "SMTP password",
			},
		},
		{
			name: "complete",
			raw: map[string]string{
				"smtp_host":     "smtp.example.com",
				"smtp_username": "mailer",
				"smtp_password": "secret",
			},
			missing: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromMap(tt.raw)
			assert.Equal(t, tt.missing, s.MissingTransportFields())
		})
	}
}

func TestMissingSendFields_RequiresFromEmail(t *testing.T) {
	s := FromMap(map[string]string{
		"smtp_host":     "smtp.example.com",
		"smtp_username": "mailer",
		"smtp_password": "secret",
	})

	assert.Equal(t, []string{"from email"}, s.MissingSendFields())

	s.FromEmail = "billing@example.com"
	assert.Empty(t, s.MissingSendFields())
}
