// Package handler implements the JSON API consumed by the desktop
// shell. Reminder operations always answer 200 with the engine's
// success flag in the body; HTTP errors are reserved for malformed
// requests.
package handler

import (
	"net/http"

	"github.com/vinledger/vinledger/internal/reminder"
)

// ReminderHandler exposes the reminder engine's four operations.
type ReminderHandler struct {
	svc *reminder.Service
}

// NewReminderHandler creates a reminder handler.
func NewReminderHandler(svc *reminder.Service) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

type operationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send handles POST /api/reminders/send.
func (h *ReminderHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DebtID int64  `json:"debt_id"`
		To     string `json:"to"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	res := h.svc.SendReminder(r.Context(), req.DebtID, req.To)
	writeJSON(w, http.StatusOK, operationResponse{Success: res.Success, Message: res.Message})
}

// Queue handles POST /api/reminders/queue.
func (h *ReminderHandler) Queue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BranchID      *int64 `json:"branch_id"`
		RatePerMinute int    `json:"rate_per_minute"`
		To            string `json:"to"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	sum := h.svc.QueueReminders(r.Context(), reminder.DispatchRequest{
		BranchID:          req.BranchID,
		RatePerMinute:     req.RatePerMinute,
		RecipientOverride: req.To,
	})
	writeJSON(w, http.StatusOK, operationResponse{Success: sum.Success, Message: sum.Message})
}

// Probe handles POST /api/reminders/probe.
func (h *ReminderHandler) Probe(w http.ResponseWriter, r *http.Request) {
	res := h.svc.Probe(r.Context())
	writeJSON(w, http.StatusOK, operationResponse{Success: res.Success, Message: res.Message})
}

// TestSend handles POST /api/reminders/test.
func (h *ReminderHandler) TestSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	res := h.svc.TestSend(r.Context(), req.To)
	writeJSON(w, http.StatusOK, operationResponse{Success: res.Success, Message: res.Message})
}
