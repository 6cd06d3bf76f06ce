package domain

import "time"

// Debt statuses as stored by the ledger. The reminder engine only ever
// reads Overdue debts; status transitions happen elsewhere.
const (
	DebtStatusPending = "Pending"
	DebtStatusPartial = "Partial"
	DebtStatusCleared = "Cleared"
	DebtStatusOverdue = "Overdue"
)

// Branch is a retail location.
type Branch struct {
	ID     int64
	Name   string
	Active bool
}

// Customer is a ledger account holder.
type Customer struct {
	ID            int64
	Name          string
	Phone         string
	Email         string
	Notes         string
	CreditLimit   float64
	IsBlacklisted bool
	BranchID      *int64
}

// Debt is a single credit sale. Rows handed to the reminder engine are
// joined with the customer's contact details and the branch name.
type Debt struct {
	ID             int64
	CustomerID     int64
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	Items          string
	TotalAmount    float64
	AmountPaid     float64
	DateOfPurchase time.Time
	DueDate        time.Time
	Reference      string
	Status         string
	BranchID       *int64
	BranchName     string
}

// Balance is the outstanding amount. It is always derived, never stored.
func (d Debt) Balance() float64 {
	return d.TotalAmount - d.AmountPaid
}

// Payment records money received against a debt.
type Payment struct {
	ID         int64
	DebtID     int64
	CustomerID int64
	Date       time.Time
	Amount     float64
	Method     string
	Reference  string
	Notes      string
}
