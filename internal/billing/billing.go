// Package billing holds the invoice status rules. There is no
// scheduled job: overdue detection runs opportunistically on every
// invoice read, so the same invoice may be evaluated many times and
// every rule here must be idempotent.
package billing

import (
	"time"

	"nestify/internal/model"

	"gorm.io/gorm"
)

// LateFeeRate is applied once to the invoice amount when it first goes
// overdue.
const LateFeeRate = 0.10

// Evaluate applies the overdue transition to a single invoice as of
// the given day. A pending invoice strictly past its due date becomes
// overdue, and receives the late fee exactly once: the fee is only set
// while LateFee is still zero, so re-evaluating a stale invoice leaves
// the fee stable. Reports whether the invoice changed.
func Evaluate(inv *model.MaintenanceInvoice, today time.Time) bool {
	if inv.Status != model.InvoiceStatusPending {
		return false
	}
	if !inv.DueDate.Before(dateOf(today)) {
		return false
	}

	inv.Status = model.InvoiceStatusOverdue
	if inv.LateFee == 0 {
		inv.LateFee = inv.Amount * LateFeeRate
		inv.TotalAmount = inv.Amount + inv.LateFee
	}
	return true
}

// ApplyOverdue evaluates every invoice in the slice and persists the
// ones that changed. Returns the number of invoices transitioned.
func ApplyOverdue(db *gorm.DB, invoices []model.MaintenanceInvoice, today time.Time) (int, error) {
	changed := 0
	for i := range invoices {
		if !Evaluate(&invoices[i], today) {
			continue
		}
		if err := db.Save(&invoices[i]).Error; err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// dateOf truncates a timestamp to its calendar date so that due-date
// comparison ignores the time of day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
