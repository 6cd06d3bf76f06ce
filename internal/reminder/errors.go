package reminder

import (
	"fmt"
	"strings"
)

// ConfigError reports required email settings that are absent. It is
// returned before any network I/O is attempted.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "email settings are incomplete; missing: " + strings.Join(e.Missing, ", ")
}

// RecipientError reports that no email address could be resolved for the
// target customer.
type RecipientError struct {
	Reason string
}

func (e *RecipientError) Error() string {
	return e.Reason
}

// TransportError wraps a failure while dialing, authenticating or
// sending over SMTP.
type TransportError struct {
	Op  string // "connect", "verify" or "send"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smtp %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
