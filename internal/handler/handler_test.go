package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"nestify/internal/model"
	"nestify/internal/schedule"
	"nestify/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database, migrates the schema
// and installs it as the package-level connection the handlers use.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	return db
}

// newContext builds an echo context the way the middleware chain would:
// JSON body, a quiet logger and the authenticated user preloaded.
func newContext(t *testing.T, method, target string, body interface{}, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	c.Set("logger", zap.NewNop())
	if user != nil {
		c.Set("current_user", user)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string, societyID, flatID *uint) *model.User {
	t.Helper()
	email := name + "@example.com"
	user := model.User{
		Name:      name,
		Email:     &email,
		Role:      role,
		SocietyID: societyID,
		FlatID:    flatID,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestSociety(t *testing.T, db *gorm.DB) *model.Society {
	t.Helper()
	society := model.Society{
		Name:     "Test Society",
		Address:  "1 Test Lane",
		City:     "Testville",
		State:    "TS",
		Pincode:  "000001",
		IsActive: true,
	}
	require.NoError(t, db.Create(&society).Error)
	return &society
}

func uintPtr(v uint) *uint { return &v }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}
