package handler

import (
	"net/http"
	"strconv"
	"testing"

	"nestify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotice(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	c, rec := newContext(t, http.MethodPost, "/api/notices", map[string]interface{}{
		"title":   "Water supply interruption",
		"content": "Tank cleaning on Sunday, no water 9-11 AM.",
	}, admin)
	require.NoError(t, CreateNotice(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var notice model.Notice
	decodeBody(t, rec, &notice)
	assert.Equal(t, "general", notice.Category)
	assert.True(t, notice.IsActive)
	assert.Equal(t, admin.ID, notice.CreatedBy)
}

func TestDeleteNoticeSoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	notice := model.Notice{
		SocietyID: society.ID, Title: "Old news", Content: "x",
		Category: "general", CreatedBy: admin.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&notice).Error)
	id := strconv.Itoa(int(notice.ID))

	c, rec := newContext(t, http.MethodDelete, "/api/notices/"+id, nil, admin)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, DeleteNotice(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// The row survives with the active flag cleared.
	var stored model.Notice
	require.NoError(t, db.First(&stored, notice.ID).Error)
	assert.False(t, stored.IsActive)

	// And the listing no longer shows it.
	c, rec = newContext(t, http.MethodGet, "/api/notices", nil, admin)
	require.NoError(t, ListNotices(c))
	var listed []model.Notice
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)
}

func TestDeleteNoticeNotFound(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	c, rec := newContext(t, http.MethodDelete, "/api/notices/999", nil, admin)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, DeleteNotice(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNoticesScopedToSociety(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	other := model.Society{Name: "Other", Address: "2 Far Road", City: "X", State: "Y", Pincode: "2", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	notices := []model.Notice{
		{SocietyID: society.ID, Title: "Ours", Content: "x", Category: "general", CreatedBy: admin.ID, IsActive: true},
		{SocietyID: other.ID, Title: "Theirs", Content: "x", Category: "general", CreatedBy: admin.ID, IsActive: true},
	}
	require.NoError(t, db.Create(&notices).Error)

	c, rec := newContext(t, http.MethodGet, "/api/notices", nil, admin)
	require.NoError(t, ListNotices(c))
	var listed []model.Notice
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Ours", listed[0].Title)
}
