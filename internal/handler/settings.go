package handler

import (
	"context"
	"net/http"

	"github.com/vinledger/vinledger/internal/domain"
)

// SettingsStore reads and writes the key/value settings table.
type SettingsStore interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, values map[string]string) error
}

// BranchStore lists branches for the dispatch filter.
type BranchStore interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// SettingsHandler serves application settings and the branch list.
type SettingsHandler struct {
	settings SettingsStore
	branches BranchStore
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(settings SettingsStore, branches BranchStore) *SettingsHandler {
	return &SettingsHandler{settings: settings, branches: branches}
}

// Get handles GET /api/settings. The SMTP password is masked; the shell
// sends it back only when the operator changes it.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.GetSettings(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	if values["smtp_password"] != "" {
		values["smtp_password"] = "********"
	}
	writeJSON(w, http.StatusOK, values)
}

// Update handles PUT /api/settings with a partial key/value map.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if len(values) == 0 {
		badRequest(w, "no settings provided")
		return
	}
	// A masked password echoed back unchanged is not an update.
	if values["smtp_password"] == "********" {
		delete(values, "smtp_password")
	}

	if err := h.settings.UpdateSettings(r.Context(), values); err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type branchItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Branches handles GET /api/branches.
func (h *SettingsHandler) Branches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branches.ListBranches(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	items := make([]branchItem, len(branches))
	for i, b := range branches {
		items[i] = branchItem{ID: b.ID, Name: b.Name}
	}
	writeJSON(w, http.StatusOK, items)
}
