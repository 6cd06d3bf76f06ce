// Package reminder implements the overdue-debt reminder dispatch engine:
// template rendering, PDF statements, a validated SMTP transport, and a
// rate-limited bulk send loop with a per-attempt delivery audit log.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vinledger/vinledger/internal/domain"
	"github.com/vinledger/vinledger/internal/settings"
	"github.com/vinledger/vinledger/internal/telemetry"
)

// DebtStore provides read access to the ledger's debts.
type DebtStore interface {
	DebtByID(ctx context.Context, id int64) (*domain.Debt, error)
	OverdueDebts(ctx context.Context, branchID *int64) ([]domain.Debt, error)
}

// SettingsSource provides the raw key/value application settings.
type SettingsSource interface {
	GetSettings(ctx context.Context) (map[string]string, error)
}

// DeliveryLog records one audit entry per send attempt. Append failures
// are swallowed by this package; the log is best-effort.
type DeliveryLog interface {
	AppendEmailLog(ctx context.Context, entry domain.EmailLogEntry) error
}

// DispatchRequest selects the recipients and pacing for a bulk dispatch.
type DispatchRequest struct {
	BranchID *int64
	// RatePerMinute caps outbound volume. Zero or negative values fall
	// back to defaultRatePerMinute silently.
	RatePerMinute int
	// RecipientOverride redirects every message to one address instead
	// of each customer's own. Eligibility is still judged on the stored
	// email.
	RecipientOverride string
}

// DispatchSummary aggregates a bulk dispatch.
type DispatchSummary struct {
	Success bool
	Message string
	Sent    int
	Failed  int
}

const (
	defaultRatePerMinute = 30

	defaultSubjectTemplate = "Payment Reminder - {{ business }}"

	defaultBodyTemplate = `<p>Dear {{ customer_name }},</p>
<p>This is a friendly reminder that your balance of <strong>{{ balance }}</strong> for {{ items }} is due on {{ due_date }}.</p>
<p>Total: {{ total }}<br>Paid: {{ paid }}<br>Outstanding: {{ balance }}</p>
<p>Please arrange payment at your earliest convenience.</p>`
)

// Service orchestrates reminder delivery. All four public operations
// return result values; no failure propagates past the operation
// boundary.
type Service struct {
	debts    DebtStore
	settings SettingsSource
	log      DeliveryLog
	metrics  *telemetry.Metrics // optional
	logger   *slog.Logger

	// Injection points. Production wiring keeps the defaults; tests
	// substitute recording implementations and a fake clock.
	newTransport TransportFactory
	statement    StatementGenerator
	sleep        func(time.Duration)
	now          func() time.Time
}

// NewService wires an orchestrator with production defaults. metrics may
// be nil.
func NewService(debts DebtStore, src SettingsSource, log DeliveryLog, metrics *telemetry.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		debts:        debts,
		settings:     src,
		log:          log,
		metrics:      metrics,
		logger:       logger,
		newTransport: NewTransport,
		statement:    GenerateStatement,
		sleep:        time.Sleep,
		now:          time.Now,
	}
}

// SendReminder renders and delivers one reminder for the given debt.
// recipientOverride, when non-empty, replaces the customer's stored
// address. The outcome is logged to the delivery log whenever debt
// context exists, success or failure.
func (s *Service) SendReminder(ctx context.Context, debtID int64, recipientOverride string) domain.DeliveryResult {
	if debtID <= 0 {
		return failure("A debt id is required.")
	}

	debt, err := s.debts.DebtByID(ctx, debtID)
	if err != nil {
		if domain.ErrorCode(err) == domain.ENOTFOUND {
			return failure(fmt.Sprintf("Debt %d not found.", debtID))
		}
		s.logger.Error("reminder: debt lookup failed", "debt_id", debtID, "error", err)
		return failure("Failed to load the debt record.")
	}

	recipient := recipientOverride
	if recipient == "" {
		recipient = debt.CustomerEmail
	}
	if recipient == "" {
		err := &RecipientError{Reason: "Customer has no email address on file."}
		res := failure(err.Error())
		s.recordOutcome(ctx, debt, "", "", res)
		return res
	}

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		res := failure("Failed to load email settings.")
		s.recordOutcome(ctx, debt, recipient, "", res)
		return res
	}

	// Validated before any transport is built so an incomplete
	// configuration never triggers a connection attempt.
	if missing := cfg.MissingSendFields(); len(missing) > 0 {
		res := failure(incompleteSettingsMessage(missing))
		s.recordOutcome(ctx, debt, recipient, "", res)
		return res
	}

	vars := templateVars(*debt, cfg)
	subject := Render(orDefault(cfg.SubjectTemplate, defaultSubjectTemplate), vars)
	body := Render(orDefault(cfg.BodyTemplate, defaultBodyTemplate), vars) + signatureHTML(cfg)

	msg := &Message{
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
		To:       recipient,
		ReplyTo:  cfg.ReplyTo,
		Subject:  subject,
		HTMLBody: body,
	}

	if cfg.AttachPDF {
		if pdf, err := s.statement(*debt, cfg); err != nil {
			// Non-fatal: the reminder goes out without the statement.
			s.logger.Warn("reminder: statement generation failed, sending without attachment",
				"debt_id", debt.ID, "error", err)
		} else {
			msg.Attachment = &Attachment{
				Filename:    fmt.Sprintf("statement-%d.pdf", debt.ID),
				ContentType: "application/pdf",
				Content:     pdf,
			}
		}
	}

	transport, err := s.newTransport(cfg, s.logger)
	if err != nil {
		res := failure(err.Error())
		s.recordOutcome(ctx, debt, recipient, subject, res)
		return res
	}

	response, err := transport.Send(ctx, msg)
	if err != nil {
		res := domain.DeliveryResult{
			Success: false,
			Message: fmt.Sprintf("Failed to send reminder to %s: %v", recipient, err),
		}
		res.ProviderResponse = err.Error()
		s.recordOutcome(ctx, debt, recipient, subject, res)
		return res
	}

	res := domain.DeliveryResult{
		Success:          true,
		Message:          fmt.Sprintf("Reminder sent to %s (%s).", recipient, response),
		ProviderResponse: response,
	}
	s.recordOutcome(ctx, debt, recipient, subject, res)
	return res
}

// QueueReminders dispatches reminders for every overdue debt with an
// email address on file, strictly sequentially, pausing between
// attempts to respect the provider rate limit. One failing recipient
// never aborts the remaining queue.
func (s *Service) QueueReminders(ctx context.Context, req DispatchRequest) DispatchSummary {
	rate := req.RatePerMinute
	if rate <= 0 {
		rate = defaultRatePerMinute
	}
	spacing := time.Duration(60000/rate) * time.Millisecond

	overdue, err := s.debts.OverdueDebts(ctx, req.BranchID)
	if err != nil {
		s.logger.Error("reminder: overdue debt query failed", "error", err)
		return DispatchSummary{Success: false, Message: "Failed to load overdue debts."}
	}

	// Debts without an email are excluded from both the attempt count
	// and the final tally.
	eligible := overdue[:0:0]
	for _, d := range overdue {
		if d.CustomerEmail != "" {
			eligible = append(eligible, d)
		}
	}

	if s.metrics != nil {
		s.metrics.DispatchBatch.Observe(float64(len(eligible)))
	}

	var sent, failed int
	for _, d := range eligible {
		to := d.CustomerEmail
		if req.RecipientOverride != "" {
			to = req.RecipientOverride
		}
		if s.dispatchOne(ctx, d.ID, to).Success {
			sent++
		} else {
			failed++
		}
		// The pause applies after every attempt, including the last.
		// Tests pin this; change the policy there first.
		s.sleep(spacing)
	}

	return DispatchSummary{
		Success: true,
		Message: fmt.Sprintf("Queued %d reminders. Sent: %d, Failed: %d.", len(eligible), sent, failed),
		Sent:    sent,
		Failed:  failed,
	}
}

// dispatchOne isolates a single bulk iteration: an unexpected panic is
// folded into that recipient's failure instead of aborting the queue.
func (s *Service) dispatchOne(ctx context.Context, debtID int64, to string) (res domain.DeliveryResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reminder: dispatch panicked", "debt_id", debtID, "panic", r)
			res = failure(fmt.Sprintf("Unexpected failure: %v", r))
		}
	}()
	return s.SendReminder(ctx, debtID, to)
}

// Probe checks SMTP connectivity and authentication without sending.
func (s *Service) Probe(ctx context.Context) domain.DeliveryResult {
	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return failure("Failed to load email settings.")
	}
	if missing := cfg.MissingTransportFields(); len(missing) > 0 {
		s.countProbe(false)
		return failure(incompleteSettingsMessage(missing))
	}

	transport, err := s.newTransport(cfg, s.logger)
	if err != nil {
		s.countProbe(false)
		return failure(err.Error())
	}
	if err := transport.Verify(ctx); err != nil {
		s.countProbe(false)
		return failure(fmt.Sprintf("SMTP verification failed: %v", err))
	}

	s.countProbe(true)
	return domain.DeliveryResult{Success: true, Message: "SMTP connection verified."}
}

// TestSend delivers a fixed, non-templated test message to the given
// address, or to the configured from-address when none is given. The
// outcome is logged like any other attempt, with no customer or debt
// context.
func (s *Service) TestSend(ctx context.Context, to string) domain.DeliveryResult {
	const testSubject = "VinLedger SMTP test"

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return failure("Failed to load email settings.")
	}
	if missing := cfg.MissingSendFields(); len(missing) > 0 {
		s.countTestSend(false)
		return failure(incompleteSettingsMessage(missing))
	}

	recipient := to
	if recipient == "" {
		recipient = cfg.FromEmail
	}

	msg := &Message{
		From:     cfg.FromEmail,
		FromName: cfg.FromName,
		To:       recipient,
		ReplyTo:  cfg.ReplyTo,
		Subject:  testSubject,
		HTMLBody: "<p>This is a test message confirming your email settings are working.</p>" + signatureHTML(cfg),
	}

	transport, err := s.newTransport(cfg, s.logger)
	if err != nil {
		s.countTestSend(false)
		return failure(err.Error())
	}

	entry := domain.EmailLogEntry{
		Recipient:   recipient,
		Subject:     testSubject,
		BodySnippet: "Configuration test message",
		SentAt:      s.now(),
	}

	response, err := transport.Send(ctx, msg)
	if err != nil {
		entry.Status = domain.EmailStatusFailed
		entry.Response = err.Error()
		s.appendLog(ctx, entry)
		s.countTestSend(false)
		return failure(fmt.Sprintf("Test email failed: %v", err))
	}

	entry.Status = domain.EmailStatusSent
	entry.Response = response
	s.appendLog(ctx, entry)
	s.countTestSend(true)
	return domain.DeliveryResult{
		Success:          true,
		Message:          fmt.Sprintf("Test email sent to %s.", recipient),
		ProviderResponse: response,
	}
}

func (s *Service) loadSettings(ctx context.Context) (settings.Settings, error) {
	raw, err := s.settings.GetSettings(ctx)
	if err != nil {
		s.logger.Error("reminder: settings load failed", "error", err)
		return settings.Settings{}, err
	}
	return settings.FromMap(raw), nil
}

// recordOutcome writes the audit entry for one attempt and bumps the
// delivery counters. The log write is best-effort: its failure never
// alters the already-computed result.
func (s *Service) recordOutcome(ctx context.Context, debt *domain.Debt, recipient, subject string, res domain.DeliveryResult) {
	if s.metrics != nil {
		if res.Success {
			s.metrics.RemindersSent.Inc()
		} else {
			s.metrics.RemindersFailed.Inc()
		}
	}

	entry := domain.EmailLogEntry{
		CustomerID:  &debt.CustomerID,
		DebtID:      &debt.ID,
		Recipient:   recipient,
		Subject:     subject,
		BodySnippet: snippet(*debt),
		SentAt:      s.now(),
	}
	if res.Success {
		entry.Status = domain.EmailStatusSent
		entry.Response = res.ProviderResponse
	} else {
		entry.Status = domain.EmailStatusFailed
		entry.Response = res.Message
	}
	s.appendLog(ctx, entry)
}

func (s *Service) appendLog(ctx context.Context, entry domain.EmailLogEntry) {
	if err := s.log.AppendEmailLog(ctx, entry); err != nil {
		s.logger.Warn("reminder: delivery log append failed",
			"recipient", entry.Recipient, "status", entry.Status, "error", err)
	}
}

func (s *Service) countProbe(ok bool) {
	if s.metrics != nil {
		s.metrics.ProbeChecks.WithLabelValues(resultLabel(ok)).Inc()
	}
}

func (s *Service) countTestSend(ok bool) {
	if s.metrics != nil {
		s.metrics.TestSends.WithLabelValues(resultLabel(ok)).Inc()
	}
}

// templateVars builds the substitution set for one debt. Blank values
// substitute as "", except the customer name which falls back to
// "Customer".
func templateVars(debt domain.Debt, cfg settings.Settings) map[string]string {
	name := strings.TrimSpace(debt.CustomerName)
	if name == "" {
		name = "Customer"
	}
	return map[string]string{
		"customer_name": name,
		"items":         debt.Items,
		"total":         formatMoney(cfg.CurrencySymbol, debt.TotalAmount),
		"paid":          formatMoney(cfg.CurrencySymbol, debt.AmountPaid),
		"balance":       formatMoney(cfg.CurrencySymbol, debt.Balance()),
		"due_date":      formatDate(debt.DueDate),
		"purchase_date": formatDate(debt.DateOfPurchase),
		"business":      cfg.BusinessName,
		"branch":        debt.BranchName,
		"reference":     debt.Reference,
	}
}

// snippet is the short body summary stored in the delivery log in place
// of the full rendered HTML.
func snippet(debt domain.Debt) string {
	s := fmt.Sprintf("Balance %s due %s", formatAmount(debt.Balance()), formatDate(debt.DueDate))
	if len(s) > 140 {
		s = s[:140]
	}
	return s
}

func signatureHTML(cfg settings.Settings) string {
	if strings.TrimSpace(cfg.Signature) != "" {
		return "<p>" + strings.ReplaceAll(cfg.Signature, "\n", "<br>") + "</p>"
	}
	return "<p>Regards,<br>" + cfg.BusinessName + "</p>"
}

func incompleteSettingsMessage(missing []string) string {
	return "Email settings are incomplete. Missing: " + strings.Join(missing, ", ") + "."
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func failure(msg string) domain.DeliveryResult {
	return domain.DeliveryResult{Success: false, Message: msg}
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
