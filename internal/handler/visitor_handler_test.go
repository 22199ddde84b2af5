package handler

import (
	"net/http"
	"strconv"
	"testing"

	"nestify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestVisitor(t *testing.T, db *gorm.DB, societyID, flatID uint) *model.Visitor {
	t.Helper()
	visitor := model.Visitor{
		SocietyID:   societyID,
		FlatID:      flatID,
		VisitorName: "Courier",
		Purpose:     "Delivery",
		Status:      model.VisitorStatusPending,
	}
	require.NoError(t, db.Create(&visitor).Error)
	return &visitor
}

func TestAddVisitor(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	guard := createTestUser(t, db, "guard", model.RoleSecurity, &society.ID, nil)

	c, rec := newContext(t, http.MethodPost, "/api/visitors", map[string]interface{}{
		"flat_id":        4,
		"visitor_name":   "Courier",
		"visitor_phone":  "+919812345678",
		"purpose":        "Delivery",
		"vehicle_number": "KA01AB1234",
	}, guard)
	require.NoError(t, AddVisitor(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var visitor model.Visitor
	decodeBody(t, rec, &visitor)
	assert.Equal(t, model.VisitorStatusPending, visitor.Status)
	assert.Equal(t, uint(4), visitor.FlatID)
	assert.Nil(t, visitor.ExitTime)
}

func TestApproveVisitor(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	resident := createTestUser(t, db, "resident", model.RoleResident, &society.ID, uintPtr(4))
	visitor := createTestVisitor(t, db, society.ID, 4)
	id := strconv.Itoa(int(visitor.ID))

	c, rec := newContext(t, http.MethodPut, "/api/visitors/"+id+"/approve", nil, resident)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, ApproveVisitor(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var approved model.Visitor
	decodeBody(t, rec, &approved)
	assert.Equal(t, model.VisitorStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, resident.ID, *approved.ApprovedBy)
}

func TestCheckoutVisitor(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	guard := createTestUser(t, db, "guard", model.RoleSecurity, &society.ID, nil)
	visitor := createTestVisitor(t, db, society.ID, 4)
	id := strconv.Itoa(int(visitor.ID))

	c, rec := newContext(t, http.MethodPut, "/api/visitors/"+id+"/checkout", nil, guard)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, CheckoutVisitor(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var out model.Visitor
	decodeBody(t, rec, &out)
	assert.Equal(t, model.VisitorStatusCheckedOut, out.Status)
	assert.NotNil(t, out.ExitTime)
}

func TestVisitorNotFound(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	guard := createTestUser(t, db, "guard", model.RoleSecurity, &society.ID, nil)

	c, rec := newContext(t, http.MethodPut, "/api/visitors/999/approve", nil, guard)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, ApproveVisitor(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(t, http.MethodPut, "/api/visitors/999/checkout", nil, guard)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, CheckoutVisitor(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVisitorsScoping(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	guard := createTestUser(t, db, "guard", model.RoleSecurity, &society.ID, nil)
	resident := createTestUser(t, db, "resident", model.RoleResident, &society.ID, uintPtr(1))
	noFlat := createTestUser(t, db, "noflat", model.RoleResident, &society.ID, nil)

	createTestVisitor(t, db, society.ID, 1)
	createTestVisitor(t, db, society.ID, 2)

	var listed []model.Visitor

	c, rec := newContext(t, http.MethodGet, "/api/visitors", nil, guard)
	require.NoError(t, ListVisitors(c))
	decodeBody(t, rec, &listed)
	assert.Len(t, listed, 2)

	c, rec = newContext(t, http.MethodGet, "/api/visitors", nil, resident)
	require.NoError(t, ListVisitors(c))
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, uint(1), listed[0].FlatID)

	c, rec = newContext(t, http.MethodGet, "/api/visitors", nil, noFlat)
	require.NoError(t, ListVisitors(c))
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)
}
