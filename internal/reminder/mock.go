package reminder

import (
	"context"

	"github.com/vinledger/vinledger/internal/domain"
)

// MockTransport is a test Transport that records calls and delegates to
// the configured functions.
type MockTransport struct {
	VerifyFunc func(ctx context.Context) error
	SendFunc   func(ctx context.Context, msg *Message) (string, error)

	VerifyCalls int
	SendCalls   int
	SentMsgs    []*Message
}

var _ Transport = (*MockTransport)(nil)

func (m *MockTransport) Verify(ctx context.Context) error {
	m.VerifyCalls++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx)
	}
	return nil
}

func (m *MockTransport) Send(ctx context.Context, msg *Message) (string, error) {
	m.SendCalls++
	m.SentMsgs = append(m.SentMsgs, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return "smtp-mock", nil
}

// MockDebtStore is a test DebtStore.
type MockDebtStore struct {
	DebtByIDFunc     func(ctx context.Context, id int64) (*domain.Debt, error)
	OverdueDebtsFunc func(ctx context.Context, branchID *int64) ([]domain.Debt, error)
}

var _ DebtStore = (*MockDebtStore)(nil)

func (m *MockDebtStore) DebtByID(ctx context.Context, id int64) (*domain.Debt, error) {
	if m.DebtByIDFunc != nil {
		return m.DebtByIDFunc(ctx, id)
	}
	return nil, domain.Errorf(domain.ENOTFOUND, "debt.get", "Debt not found")
}

func (m *MockDebtStore) OverdueDebts(ctx context.Context, branchID *int64) ([]domain.Debt, error) {
	if m.OverdueDebtsFunc != nil {
		return m.OverdueDebtsFunc(ctx, branchID)
	}
	return nil, nil
}

// MockSettingsSource serves a fixed settings map.
type MockSettingsSource struct {
	GetSettingsFunc func(ctx context.Context) (map[string]string, error)
	Values          map[string]string
}

var _ SettingsSource = (*MockSettingsSource)(nil)

func (m *MockSettingsSource) GetSettings(ctx context.Context) (map[string]string, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(ctx)
	}
	return m.Values, nil
}

// MockDeliveryLog collects appended entries in memory.
type MockDeliveryLog struct {
	AppendFunc func(ctx context.Context, entry domain.EmailLogEntry) error
	Entries    []domain.EmailLogEntry
}

var _ DeliveryLog = (*MockDeliveryLog)(nil)

func (m *MockDeliveryLog) AppendEmailLog(ctx context.Context, entry domain.EmailLogEntry) error {
	m.Entries = append(m.Entries, entry)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	return nil
}
