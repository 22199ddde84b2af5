package handler

import (
	"net/http"
	"time"

	"nestify/internal/billing"
	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/internal/policy"
	"nestify/internal/schedule"
	"nestify/pkg/database"
	"nestify/pkg/logger"
	"nestify/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InvoiceRequest defines the structure for invoice creation
type InvoiceRequest struct {
	SocietyID *uint   `json:"society_id,omitempty"`
	FlatID    uint    `json:"flat_id"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date"`
	Month     int     `json:"month"`
	Year      int     `json:"year"`
}

// ListInvoices returns invoices scoped by role: society-wide for
// admin/treasurer, own flat for residents. Overdue invoices are
// transitioned and late fees applied before the response is built.
func ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var invoices []model.MaintenanceInvoice
	switch {
	case policy.CanManageBilling(user) && user.SocietyID != nil:
		if result := db.Where("society_id = ?", *user.SocietyID).
			Order("created_at desc").Find(&invoices); result.Error != nil {
			log.Error("Failed to list invoices", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve invoices"})
		}
	case user.FlatID != nil:
		if result := db.Where("flat_id = ?", *user.FlatID).
			Order("created_at desc").Find(&invoices); result.Error != nil {
			log.Error("Failed to list invoices", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve invoices"})
		}
	default:
		return c.JSON(http.StatusOK, []model.MaintenanceInvoice{})
	}

	// Lazy overdue transition: no background job exists, so the late
	// fee rule runs on every read and must be persisted before the
	// response goes out.
	applied, err := billing.ApplyOverdue(db, invoices, time.Now().UTC())
	if err != nil {
		log.Error("Failed to persist overdue transitions", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update invoices"})
	}
	if applied > 0 {
		prometheus.LateFeeCounter.Add(float64(applied))
		log.Info("Invoices transitioned to overdue", zap.Int("count", applied))
	}

	return c.JSON(http.StatusOK, invoices)
}

func CreateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	societyID := req.SocietyID
	if societyID == nil {
		societyID = user.SocietyID
	}
	if societyID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "society ID required"})
	}

	dueDate, err := schedule.ParseDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid due_date format, use YYYY-MM-DD"})
	}

	invoice := model.MaintenanceInvoice{
		SocietyID:   *societyID,
		FlatID:      req.FlatID,
		Amount:      req.Amount,
		TotalAmount: req.Amount,
		DueDate:     dueDate,
		Month:       req.Month,
		Year:        req.Year,
		Status:      model.InvoiceStatusPending,
	}
	if result := database.GetDB().Create(&invoice); result.Error != nil {
		log.Error("Failed to create invoice", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create invoice"})
	}

	log.Info("Invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.Uint("flat_id", invoice.FlatID),
		zap.Float64("amount", invoice.Amount))
	return c.JSON(http.StatusCreated, invoice)
}

// ListPayments returns payments scoped by role: society-wide for
// admin/treasurer, the caller's own otherwise
func ListPayments(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var payments []model.Payment
	var result error
	if policy.CanManageBilling(user) && user.SocietyID != nil {
		result = db.
			Joins("JOIN maintenance_invoices ON maintenance_invoices.id = payments.invoice_id").
			Where("maintenance_invoices.society_id = ?", *user.SocietyID).
			Order("payments.payment_date desc").
			Find(&payments).Error
	} else {
		result = db.Where("user_id = ?", user.ID).
			Order("payment_date desc").
			Find(&payments).Error
	}
	if result != nil {
		log.Error("Failed to list payments", zap.Error(result))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve payments"})
	}
	return c.JSON(http.StatusOK, payments)
}

// PaymentRequest defines the structure for recording a payment
type PaymentRequest struct {
	InvoiceID     uint    `json:"invoice_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
}

// RecordPayment settles an invoice in full. Paid invoices reject
// further payments.
func RecordPayment(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var invoice model.MaintenanceInvoice
	if result := db.First(&invoice, req.InvoiceID); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}
	if invoice.Status == model.InvoiceStatusPaid {
		log.Warn("Payment rejected, invoice already paid", zap.Uint("invoice_id", invoice.ID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invoice already paid"})
	}

	payment := model.Payment{
		InvoiceID:     req.InvoiceID,
		UserID:        user.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	}
	if result := db.Create(&payment); result.Error != nil {
		log.Error("Failed to record payment", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
	}

	if err := db.Model(&invoice).Update("status", model.InvoiceStatusPaid).Error; err != nil {
		log.Error("Failed to mark invoice paid", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
	}

	prometheus.PaymentCounter.Inc()
	log.Info("Payment recorded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", invoice.ID),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusCreated, payment)
}
