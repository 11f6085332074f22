// internal/circulation/domain.go
package circulation

import (
	"time"

	"github.com/google/uuid"
)

const (
	// LoanPeriodDays is the length of a loan; the due date is the borrow
	// time plus this many days.
	LoanPeriodDays = 14

	// DailyFineRate is charged per whole day past the due date.
	DailyFineRate = 1.0

	// DefaultCondition is recorded when the caller does not report one.
	DefaultCondition = "Good"
)

// BorrowRecord represents one loan of a book. A record is created open
// (Returned=false) and is closed exactly once; afterwards it is history.
type BorrowRecord struct {
	ID                uuid.UUID  `json:"id"`
	BookRef           int64      `json:"-"`
	BorrowerName      string     `json:"borrower_name"`
	BorrowerEmail     string     `json:"borrower_email,omitempty"`
	BorrowerPhone     string     `json:"borrower_phone,omitempty"`
	BorrowerID        string     `json:"borrower_id,omitempty"`
	BorrowedDate      time.Time  `json:"borrowed_date"`
	DueDate           time.Time  `json:"due_date"`
	ReturnDate        *time.Time `json:"return_date"`
	Returned          bool       `json:"returned"`
	ConditionOnBorrow string     `json:"condition_on_borrow,omitempty"`
	ConditionOnReturn string     `json:"condition_on_return,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	FineAmount        float64    `json:"fine_amount"`
}

// Borrower identifies who is taking a book out. Name is required; the
// remaining fields are kept for the library's records only.
type Borrower struct {
	Name     string `json:"borrower_name"`
	Email    string `json:"borrower_email,omitempty"`
	Phone    string `json:"borrower_phone,omitempty"`
	MemberID string `json:"borrower_id,omitempty"`
}

// BorrowReceipt reports a successful borrow.
type BorrowReceipt struct {
	BookTitle string
	DueDate   time.Time
}

// ReturnReceipt reports a successful return, including any late fine.
type ReturnReceipt struct {
	BookTitle  string
	FineAmount float64
}

// CalculateFine returns the fine owed if the record were closed at
// returnedAt: one DailyFineRate per whole day past the due date, never
// negative. A return within 24 hours of the due date costs nothing.
func (r *BorrowRecord) CalculateFine(returnedAt time.Time) float64 {
	if !returnedAt.After(r.DueDate) {
		return 0
	}
	daysLate := int(returnedAt.Sub(r.DueDate).Hours() / 24)
	return float64(daysLate) * DailyFineRate
}
