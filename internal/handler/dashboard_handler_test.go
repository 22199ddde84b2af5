package handler

import (
	"net/http"
	"testing"
	"time"

	"nestify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDashboard(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)
	alice := createTestUser(t, db, "alice", model.RoleResident, &society.ID, uintPtr(1))

	now := time.Now().UTC()
	paid := createTestInvoice(t, db, society.ID, 1, 5000, now, model.InvoiceStatusPaid)
	createTestInvoice(t, db, society.ID, 2, 3000, now.AddDate(0, 0, 10), model.InvoiceStatusPending)

	payment := model.Payment{InvoiceID: paid.ID, UserID: alice.ID, Amount: 5000, PaymentMethod: "upi"}
	require.NoError(t, db.Create(&payment).Error)

	complaints := []model.Complaint{
		{SocietyID: society.ID, UserID: alice.ID, Title: "a",
			Status: model.ComplaintStatusOpen, Priority: model.PriorityLow},
		{SocietyID: society.ID, UserID: alice.ID, Title: "b",
			Status: model.ComplaintStatusResolved, Priority: model.PriorityLow},
	}
	require.NoError(t, db.Create(&complaints).Error)
	createTestVisitor(t, db, society.ID, 1)

	c, rec := newContext(t, http.MethodGet, "/api/dashboard/admin", nil, admin)
	require.NoError(t, AdminDashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalCollected  float64 `json:"total_collected"`
		TotalPending    float64 `json:"total_pending"`
		PendingCount    int     `json:"pending_count"`
		TotalComplaints int     `json:"total_complaints"`
		OpenComplaints  int     `json:"open_complaints"`
		TotalResidents  int     `json:"total_residents"`
		ActiveVisitors  int     `json:"active_visitors"`
		MonthlyData     []struct {
			Month     string  `json:"month"`
			Collected float64 `json:"collected"`
			Pending   float64 `json:"pending"`
		} `json:"monthly_data"`
	}
	decodeBody(t, rec, &resp)

	assert.Equal(t, 5000.0, resp.TotalCollected)
	assert.Equal(t, 3000.0, resp.TotalPending)
	assert.Equal(t, 1, resp.PendingCount)
	assert.Equal(t, 2, resp.TotalComplaints)
	assert.Equal(t, 1, resp.OpenComplaints)
	assert.Equal(t, 1, resp.TotalResidents)
	assert.Equal(t, 1, resp.ActiveVisitors)
	require.Len(t, resp.MonthlyData, 6)
	assert.Equal(t, now.Month().String()[:3], resp.MonthlyData[5].Month)
}

func TestAdminDashboardWithoutSociety(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, nil, nil)

	c, rec := newContext(t, http.MethodGet, "/api/dashboard/admin", nil, admin)
	require.NoError(t, AdminDashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.EqualValues(t, 0, resp["total_collected"])
	assert.EqualValues(t, 0, resp["total_residents"])
}

func TestResidentDashboard(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	alice := createTestUser(t, db, "alice", model.RoleResident, &society.ID, uintPtr(1))

	now := time.Now().UTC()
	createTestInvoice(t, db, society.ID, 1, 5000, now.AddDate(0, 0, 10), model.InvoiceStatusPending)
	paid := createTestInvoice(t, db, society.ID, 1, 4000, now.AddDate(0, -1, 0), model.InvoiceStatusPaid)
	payment := model.Payment{InvoiceID: paid.ID, UserID: alice.ID, Amount: 4000, PaymentMethod: "upi"}
	require.NoError(t, db.Create(&payment).Error)

	complaint := model.Complaint{SocietyID: society.ID, UserID: alice.ID, Title: "leak",
		Status: model.ComplaintStatusOpen, Priority: model.PriorityHigh}
	require.NoError(t, db.Create(&complaint).Error)

	c, rec := newContext(t, http.MethodGet, "/api/dashboard/resident", nil, alice)
	require.NoError(t, ResidentDashboard(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PendingAmount    float64                  `json:"pending_amount"`
		TotalPaid        float64                  `json:"total_paid"`
		PendingBills     int                      `json:"pending_bills"`
		OpenComplaints   int                      `json:"open_complaints"`
		RecentInvoices   []map[string]interface{} `json:"recent_invoices"`
		RecentPayments   []map[string]interface{} `json:"recent_payments"`
		RecentComplaints []map[string]interface{} `json:"recent_complaints"`
	}
	decodeBody(t, rec, &resp)

	assert.Equal(t, 5000.0, resp.PendingAmount)
	assert.Equal(t, 4000.0, resp.TotalPaid)
	assert.Equal(t, 1, resp.PendingBills)
	assert.Equal(t, 1, resp.OpenComplaints)
	assert.Len(t, resp.RecentInvoices, 2)
	assert.Len(t, resp.RecentPayments, 1)
	assert.Len(t, resp.RecentComplaints, 1)
}
