package handler

import (
	"net/http"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListNotices returns the active notices of the caller's society
func ListNotices(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user.SocietyID == nil {
		return c.JSON(http.StatusOK, []model.Notice{})
	}

	var notices []model.Notice
	result := database.GetDB().
		Where("society_id = ? AND is_active = ?", *user.SocietyID, true).
		Order("created_at desc").
		Find(&notices)
	if result.Error != nil {
		logger.FromContext(c).Error("Failed to list notices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve notices"})
	}
	return c.JSON(http.StatusOK, notices)
}

// NoticeRequest defines the structure for notice creation
type NoticeRequest struct {
	SocietyID *uint  `json:"society_id,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"`
}

func CreateNotice(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req NoticeRequest
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

	category := req.Category
	if category == "" {
		category = "general"
	}

	notice := model.Notice{
		SocietyID: *societyID,
		Title:     req.Title,
		Content:   req.Content,
		Category:  category,
		CreatedBy: user.ID,
		IsActive:  true,
	}
	if result := database.GetDB().Create(&notice); result.Error != nil {
		log.Error("Failed to create notice", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create notice"})
	}

	log.Info("Notice created",
		zap.Uint("notice_id", notice.ID),
		zap.String("category", notice.Category))
	return c.JSON(http.StatusCreated, notice)
}

// DeleteNotice clears the active flag; the row stays for the record
func DeleteNotice(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var notice model.Notice
	if result := db.First(&notice, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notice not found"})
	}

	if err := db.Model(&notice).Update("is_active", false).Error; err != nil {
		log.Error("Failed to delete notice", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete notice"})
	}

	log.Info("Notice deactivated", zap.Uint("notice_id", notice.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "notice deleted"})
}
