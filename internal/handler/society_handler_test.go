package handler

import (
	"net/http"
	"strconv"
	"testing"

	"nestify/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSocietyAdoptsUnassignedAdmin(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, nil, nil)

	c, rec := newContext(t, http.MethodPost, "/api/societies", map[string]interface{}{
		"name":    "Emerald Heights",
		"address": "123 Park Avenue",
		"city":    "Bangalore",
		"state":   "Karnataka",
		"pincode": "560001",
	}, admin)
	require.NoError(t, CreateSociety(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var society model.Society
	decodeBody(t, rec, &society)
	assert.NotZero(t, society.ID)

	var stored model.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	require.NotNil(t, stored.SocietyID)
	assert.Equal(t, society.ID, *stored.SocietyID)
}

func TestCreateSocietyKeepsAssignedAdmin(t *testing.T) {
	db := setupTestDB(t)
	existing := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &existing.ID, nil)

	c, rec := newContext(t, http.MethodPost, "/api/societies", map[string]interface{}{
		"name":    "Second Society",
		"address": "456 Lake Road",
		"city":    "Bangalore",
		"state":   "Karnataka",
		"pincode": "560066",
	}, admin)
	require.NoError(t, CreateSociety(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored model.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	require.NotNil(t, stored.SocietyID)
	assert.Equal(t, existing.ID, *stored.SocietyID)
}

func TestListSocietiesScoping(t *testing.T) {
	db := setupTestDB(t)
	first := createTestSociety(t, db)
	second := model.Society{Name: "Second", Address: "a", City: "b", State: "c", Pincode: "2", IsActive: true}
	require.NoError(t, db.Create(&second).Error)

	admin := createTestUser(t, db, "admin", model.RoleAdmin, &first.ID, nil)
	resident := createTestUser(t, db, "resident", model.RoleResident, &first.ID, nil)
	unassigned := createTestUser(t, db, "unassigned", model.RoleResident, nil, nil)

	var listed []model.Society

	c, rec := newContext(t, http.MethodGet, "/api/societies", nil, admin)
	require.NoError(t, ListSocieties(c))
	decodeBody(t, rec, &listed)
	assert.Len(t, listed, 2)

	c, rec = newContext(t, http.MethodGet, "/api/societies", nil, resident)
	require.NoError(t, ListSocieties(c))
	decodeBody(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, first.ID, listed[0].ID)

	c, rec = newContext(t, http.MethodGet, "/api/societies", nil, unassigned)
	require.NoError(t, ListSocieties(c))
	decodeBody(t, rec, &listed)
	assert.Empty(t, listed)
}

func TestGetSocietyNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "admin", model.RoleAdmin, nil, nil)

	c, rec := newContext(t, http.MethodGet, "/api/societies/999", nil, user)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, GetSociety(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTowersAndFlats(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	c, rec := newContext(t, http.MethodPost, "/api/societies/towers", map[string]interface{}{
		"society_id":   society.ID,
		"name":         "Tower A",
		"total_floors": 12,
	}, admin)
	require.NoError(t, CreateTower(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var tower model.Tower
	decodeBody(t, rec, &tower)
	assert.Equal(t, 12, tower.TotalFloors)

	c, rec = newContext(t, http.MethodPost, "/api/societies/flats", map[string]interface{}{
		"tower_id":    tower.ID,
		"flat_number": "A-101",
		"floor":       1,
		"area_sqft":   1100,
		"flat_type":   "2BHK",
	}, admin)
	require.NoError(t, CreateFlat(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var flat model.Flat
	decodeBody(t, rec, &flat)
	assert.Equal(t, "A-101", flat.FlatNumber)

	sid := strconv.Itoa(int(society.ID))
	c, rec = newContext(t, http.MethodGet, "/api/societies/"+sid+"/towers", nil, admin)
	c.SetParamNames("id")
	c.SetParamValues(sid)
	require.NoError(t, ListTowers(c))
	var towers []model.Tower
	decodeBody(t, rec, &towers)
	assert.Len(t, towers, 1)

	tid := strconv.Itoa(int(tower.ID))
	c, rec = newContext(t, http.MethodGet, "/api/societies/towers/"+tid+"/flats", nil, admin)
	c.SetParamNames("id")
	c.SetParamValues(tid)
	require.NoError(t, ListFlats(c))
	var flats []model.Flat
	decodeBody(t, rec, &flats)
	assert.Len(t, flats, 1)
}

func TestTowerDefaultsToOneFloor(t *testing.T) {
	db := setupTestDB(t)
	society := createTestSociety(t, db)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, &society.ID, nil)

	c, rec := newContext(t, http.MethodPost, "/api/societies/towers", map[string]interface{}{
		"society_id": society.ID,
		"name":       "Annex",
	}, admin)
	require.NoError(t, CreateTower(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var tower model.Tower
	decodeBody(t, rec, &tower)
	assert.Equal(t, 1, tower.TotalFloors)
}
