package handler

import (
	"math"
	"net/http"
	"time"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sumPayments(db *gorm.DB, societyID uint, month, year int) float64 {
	var total float64
	query := db.Model(&model.Payment{}).
		Joins("JOIN maintenance_invoices ON maintenance_invoices.id = payments.invoice_id").
		Where("maintenance_invoices.society_id = ?", societyID)
	if month > 0 {
		query = query.Where("maintenance_invoices.month = ? AND maintenance_invoices.year = ?", month, year)
	}
	query.Select("COALESCE(SUM(payments.amount), 0)").Scan(&total)
	return total
}

func countComplaints(db *gorm.DB, societyID uint, status string) int64 {
	var count int64
	query := db.Model(&model.Complaint{}).Where("society_id = ?", societyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&count)
	return count
}

// AdminDashboard aggregates society-wide collections, dues, complaint
// and visitor counts, plus a six-month collection series
func AdminDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	if user.SocietyID == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"total_collected": 0, "total_pending": 0, "pending_count": 0,
			"total_complaints": 0, "open_complaints": 0, "in_progress_complaints": 0,
			"resolved_complaints": 0, "total_residents": 0, "active_visitors": 0,
			"monthly_data": []echo.Map{}, "complaints_data": []echo.Map{},
		})
	}
	sid := *user.SocietyID

	totalCollected := sumPayments(db, sid, 0, 0)

	var pendingInvoices []model.MaintenanceInvoice
	if result := db.Where("society_id = ? AND status IN ?", sid,
		[]string{model.InvoiceStatusPending, model.InvoiceStatusOverdue}).
		Find(&pendingInvoices); result.Error != nil {
		log.Error("Failed to load pending invoices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build dashboard"})
	}
	var totalPending float64
	for _, inv := range pendingInvoices {
		totalPending += inv.TotalAmount
	}

	totalComplaints := countComplaints(db, sid, "")
	openComplaints := countComplaints(db, sid, model.ComplaintStatusOpen)
	inProgress := countComplaints(db, sid, model.ComplaintStatusInProgress)
	resolved := countComplaints(db, sid, model.ComplaintStatusResolved)

	var totalResidents int64
	db.Model(&model.User{}).
		Where("society_id = ? AND role = ? AND is_active = ?", sid, model.RoleResident, true).
		Count(&totalResidents)

	var activeVisitors int64
	db.Model(&model.Visitor{}).
		Where("society_id = ? AND status IN ?", sid,
			[]string{model.VisitorStatusPending, model.VisitorStatusApproved}).
		Count(&activeVisitors)

	// Collection trend over the last six months, oldest first
	monthlyData := make([]echo.Map, 0, 6)
	now := time.Now().UTC()
	for i := 5; i >= 0; i-- {
		m := int(now.Month()) - i
		y := now.Year()
		for m <= 0 {
			m += 12
			y--
		}

		collected := sumPayments(db, sid, m, y)
		var pending float64
		db.Model(&model.MaintenanceInvoice{}).
			Where("society_id = ? AND month = ? AND year = ? AND status IN ?", sid, m, y,
				[]string{model.InvoiceStatusPending, model.InvoiceStatusOverdue}).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&pending)

		monthlyData = append(monthlyData, echo.Map{
			"month":     time.Month(m).String()[:3],
			"collected": round2(collected),
			"pending":   round2(pending),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_collected":        round2(totalCollected),
		"total_pending":          round2(totalPending),
		"pending_count":          len(pendingInvoices),
		"total_complaints":       totalComplaints,
		"open_complaints":        openComplaints,
		"in_progress_complaints": inProgress,
		"resolved_complaints":    resolved,
		"total_residents":        totalResidents,
		"active_visitors":        activeVisitors,
		"monthly_data":           monthlyData,
		"complaints_data": []echo.Map{
			{"name": "Open", "value": openComplaints},
			{"name": "In Progress", "value": inProgress},
			{"name": "Resolved", "value": resolved},
		},
	})
}

// ResidentDashboard summarizes the caller's own invoices, payments
// and complaints
func ResidentDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var invoices []model.MaintenanceInvoice
	if user.FlatID != nil {
		if result := db.Where("flat_id = ?", *user.FlatID).
			Order("created_at desc").Limit(10).Find(&invoices); result.Error != nil {
			log.Error("Failed to load invoices", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build dashboard"})
		}
	}

	var payments []model.Payment
	db.Where("user_id = ?", user.ID).Order("payment_date desc").Limit(10).Find(&payments)

	var complaints []model.Complaint
	db.Where("user_id = ?", user.ID).Order("created_at desc").Limit(10).Find(&complaints)

	var pendingAmount, paidAmount float64
	pendingBills := 0
	for _, inv := range invoices {
		if inv.Status == model.InvoiceStatusPending || inv.Status == model.InvoiceStatusOverdue {
			pendingAmount += inv.TotalAmount
			pendingBills++
		}
	}
	for _, p := range payments {
		paidAmount += p.Amount
	}
	openComplaints := 0
	for _, cm := range complaints {
		if cm.Status != model.ComplaintStatusResolved {
			openComplaints++
		}
	}

	recentInvoices := make([]echo.Map, 0, len(invoices))
	for _, inv := range invoices {
		recentInvoices = append(recentInvoices, echo.Map{
			"id": inv.ID, "month": inv.Month, "year": inv.Year,
			"amount": inv.TotalAmount, "status": inv.Status,
		})
	}
	recentPayments := make([]echo.Map, 0, len(payments))
	for _, p := range payments {
		recentPayments = append(recentPayments, echo.Map{
			"id": p.ID, "amount": p.Amount,
			"date": p.PaymentDate.Format(time.RFC3339), "method": p.PaymentMethod,
		})
	}
	recentComplaints := make([]echo.Map, 0, len(complaints))
	for _, cm := range complaints {
		recentComplaints = append(recentComplaints, echo.Map{
			"id": cm.ID, "title": cm.Title, "status": cm.Status,
			"date": cm.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"pending_amount":    round2(pendingAmount),
		"total_paid":        round2(paidAmount),
		"pending_bills":     pendingBills,
		"open_complaints":   openComplaints,
		"recent_invoices":   recentInvoices,
		"recent_payments":   recentPayments,
		"recent_complaints": recentComplaints,
	})
}
