package handler

import (
	"net/http"
	"time"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListResidents returns the residents of the admin's society
func ListResidents(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user.SocietyID == nil {
		return c.JSON(http.StatusOK, []model.User{})
	}

	var residents []model.User
	result := database.GetDB().
		Where("society_id = ? AND role = ?", *user.SocietyID, model.RoleResident).
		Find(&residents)
	if result.Error != nil {
		logger.FromContext(c).Error("Failed to list residents", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve residents"})
	}
	return c.JSON(http.StatusOK, residents)
}

func GetResident(c echo.Context) error {
	var resident model.User
	result := database.GetDB().First(&resident, c.Param("id"))
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resident not found"})
	}
	return c.JSON(http.StatusOK, resident)
}

// ResidentUpdateRequest carries the mutable resident fields; nil
// pointers mean "leave unchanged"
type ResidentUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsOwner  *bool   `json:"is_owner,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	FlatID   *uint   `json:"flat_id,omitempty"`
}

func UpdateResident(c echo.Context) error {
	log := logger.FromContext(c)

	var resident model.User
	db := database.GetDB()
	if result := db.First(&resident, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resident not found"})
	}

	var req ResidentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name != nil {
		resident.Name = *req.Name
	}
	if req.Role != nil {
		resident.Role = *req.Role
	}
	if req.IsOwner != nil {
		resident.IsOwner = *req.IsOwner
	}
	if req.IsActive != nil {
		resident.IsActive = *req.IsActive
	}
	if req.FlatID != nil {
		resident.FlatID = req.FlatID
	}

	if result := db.Save(&resident); result.Error != nil {
		log.Error("Failed to update resident", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update resident"})
	}

	log.Info("Resident updated", zap.Uint("user_id", resident.ID))
	return c.JSON(http.StatusOK, resident)
}

// AssignFlat moves a resident into a flat and stamps the move-in time
func AssignFlat(c echo.Context) error {
	log := logger.FromContext(c)

	var resident model.User
	db := database.GetDB()
	if result := db.First(&resident, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resident not found"})
	}

	var req struct {
		FlatID  uint `json:"flat_id"`
		IsOwner bool `json:"is_owner"`
	}
	if err := c.Bind(&req); err != nil || req.FlatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flat_id is required"})
	}

	now := time.Now().UTC()
	resident.FlatID = &req.FlatID
	resident.IsOwner = req.IsOwner
	resident.MovedInAt = &now
	resident.MovedOutAt = nil

	if result := db.Save(&resident); result.Error != nil {
		log.Error("Failed to assign flat", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign flat"})
	}

	log.Info("Flat assigned",
		zap.Uint("user_id", resident.ID),
		zap.Uint("flat_id", req.FlatID),
		zap.Bool("is_owner", req.IsOwner))
	return c.JSON(http.StatusOK, resident)
}

// MoveOut clears the resident's flat and stamps the move-out time
func MoveOut(c echo.Context) error {
	log := logger.FromContext(c)

	var resident model.User
	db := database.GetDB()
	if result := db.First(&resident, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resident not found"})
	}

	now := time.Now().UTC()
	resident.MovedOutAt = &now
	resident.FlatID = nil

	if err := db.Model(&resident).Select("moved_out_at", "flat_id").Updates(map[string]interface{}{
		"moved_out_at": &now,
		"flat_id":      nil,
	}).Error; err != nil {
		log.Error("Failed to move resident out", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to move resident out"})
	}

	log.Info("Resident moved out", zap.Uint("user_id", resident.ID))
	return c.JSON(http.StatusOK, resident)
}
