package reminder

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/vinledger/vinledger/internal/domain"
	"github.com/vinledger/vinledger/internal/settings"
)

// StatementGenerator produces the single-page PDF statement attached to
// reminder emails. Generation failures are non-fatal to the enclosing
// send: the caller drops the attachment and proceeds.
type StatementGenerator func(debt domain.Debt, cfg settings.Settings) ([]byte, error)

// GenerateStatement renders a one-page account statement for one debt.
func GenerateStatement(debt domain.Debt, cfg settings.Settings) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Account Statement", false)
	pdf.AddPage()

	business := cfg.BusinessName
	if business == "" {
		business = "Account Statement"
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, business, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Account Statement", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Customer", debt.CustomerName)
	if debt.CustomerPhone != "" {
		line("Phone", debt.CustomerPhone)
	}
	if debt.CustomerEmail != "" {
		line("Email", debt.CustomerEmail)
	}
	line("Debt No.", fmt.Sprintf("%d", debt.ID))
	line("Purchase Date", formatDate(debt.DateOfPurchase))
	line("Due Date", formatDate(debt.DueDate))
	if debt.Reference != "" {
		line("Reference", debt.Reference)
	}
	if debt.BranchName != "" {
		line("Branch", debt.BranchName)
	}
	pdf.Ln(4)

	line("Items", debt.Items)
	pdf.Ln(4)

	symbol := cfg.CurrencySymbol
	amount := func(label string, v float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(120, 8, label, "T", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, formatMoney(symbol, v), "T", 1, "R", false, 0, "")
	}

	amount("Total Amount", debt.TotalAmount, false)
	amount("Amount Paid", debt.AmountPaid, false)
	amount("Balance Due", debt.Balance(), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("statement encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
