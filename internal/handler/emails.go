package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vinledger/vinledger/internal/domain"
)

// EmailLogStore is the read side of the delivery log.
type EmailLogStore interface {
	ListEmailLogs(ctx context.Context, limit int) ([]domain.EmailLogEntry, error)
}

// EmailLogHandler serves the delivery audit trail.
type EmailLogHandler struct {
	store EmailLogStore
}

// NewEmailLogHandler creates an email log handler.
func NewEmailLogHandler(store EmailLogStore) *EmailLogHandler {
	return &EmailLogHandler{store: store}
}

type emailLogItem struct {
	ID          int64  `json:"id"`
	CustomerID  *int64 `json:"customer_id"`
	DebtID      *int64 `json:"debt_id"`
	Recipient   string `json:"recipient"`
	Subject     string `json:"subject"`
	BodySnippet string `json:"body_snippet"`
	Status      string `json:"status"`
	Response    string `json:"response"`
	SentAt      string `json:"sent_at"`
}

// List handles GET /api/emails, newest entries first.
func (h *EmailLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.store.ListEmailLogs(r.Context(), limit)
	if err != nil {
		internalError(w)
		return
	}

	items := make([]emailLogItem, len(entries))
	for i, e := range entries {
		items[i] = emailLogItem{
			ID:          e.ID,
			CustomerID:  e.CustomerID,
			DebtID:      e.DebtID,
			Recipient:   e.Recipient,
			Subject:     e.Subject,
			BodySnippet: e.BodySnippet,
			Status:      e.Status,
			Response:    e.Response,
			SentAt:      e.SentAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, items)
}
