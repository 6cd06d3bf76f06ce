// Package settings maps the ledger's string-keyed settings table onto a
// typed configuration for the reminder engine.
package settings

import (
	"strconv"
	"strings"
)

// Settings is the typed view of the reminder configuration. All fields
// come from the key/value settings store; absent keys yield zero values
// except where a default is noted.
type Settings struct {
	Host     string
	Port     int // default 587
	Username string
	Password string

	// Secure forces implicit TLS. Port 465 implies it regardless.
	Secure bool
	// RequireTLS demands STARTTLS on non-implicit connections. Default true.
	RequireTLS bool
	// AllowInvalidTLS disables certificate verification. Default false.
	AllowInvalidTLS bool

	FromName  string
	FromEmail string
	ReplyTo   string

	SubjectTemplate string
	BodyTemplate    string
	Signature       string
	AttachPDF       bool

	CurrencySymbol string // default "KSh"
	BusinessName   string
}

// FromMap builds Settings from the raw settings rows. Unrecognized keys
// are ignored; malformed ports fall back to 587.
func FromMap(raw map[string]string) Settings {
	s := Settings{
		Host:            strings.TrimSpace(raw["smtp_host"]),
		Port:            587,
		Username:        strings.TrimSpace(raw["smtp_username"]),
		Password:        raw["smtp_password"],
		Secure:          parseBool(raw["smtp_secure"], false),
		RequireTLS:      parseBool(raw["smtp_require_tls"], true),
		AllowInvalidTLS: parseBool(raw["smtp_allow_invalid_tls"], false),
		FromName:        strings.TrimSpace(raw["smtp_from_name"]),
		FromEmail:       strings.TrimSpace(raw["smtp_from_email"]),
		ReplyTo:         strings.TrimSpace(raw["smtp_reply_to"]),
		SubjectTemplate: raw["email_subject_template"],
		BodyTemplate:    raw["email_template_html"],
		Signature:       raw["email_signature"],
		AttachPDF:       parseBool(raw["email_attach_pdf"], false),
		CurrencySymbol:  strings.TrimSpace(raw["currency_symbol"]),
		BusinessName:    strings.TrimSpace(raw["business_name"]),
	}

	if p, err := strconv.Atoi(strings.TrimSpace(raw["smtp_port"])); err == nil && p > 0 {
		s.Port = p
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = "KSh"
	}
	return s
}

// MissingTransportFields returns the human-readable names of the fields
// a transport cannot be built without. Empty means the transport side of
// the configuration is complete.
func (s Settings) MissingTransportFields() []string {
	var missing []string
	if s.Host == "" {
		missing = append(missing, "SMTP host")
	}
	if s.Port <= 0 {
		missing = append(missing, "SMTP port")
	}
	if s.Username == "" {
		missing = append(missing, "SMTP username")
	}
	if s.Password == "" {
		missing = append(missing, "SMTP password")
	}
	return missing
}

// MissingSendFields extends MissingTransportFields with the sender
// address, which every actual send additionally requires.
func (s Settings) MissingSendFields() []string {
	missing := s.MissingTransportFields()
	if s.FromEmail == "" {
		missing = append(missing, "from email")
	}
	return missing
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
