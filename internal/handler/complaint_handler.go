package handler

import (
	"net/http"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/internal/policy"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListComplaints returns society-wide complaints for admins, the
// caller's own for everyone else
func ListComplaints(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var complaints []model.Complaint
	query := db.Order("created_at desc")
	if policy.IsAdmin(user) && user.SocietyID != nil {
		query = query.Where("society_id = ?", *user.SocietyID)
	} else {
		query = query.Where("user_id = ?", user.ID)
	}
	if result := query.Find(&complaints); result.Error != nil {
		log.Error("Failed to list complaints", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve complaints"})
	}
	return c.JSON(http.StatusOK, complaints)
}

// ComplaintRequest defines the structure for complaint creation
type ComplaintRequest struct {
	SocietyID   *uint  `json:"society_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Priority    string `json:"priority"`
}

func CreateComplaint(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req ComplaintRequest
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

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	complaint := model.Complaint{
		SocietyID:   *societyID,
		UserID:      user.ID,
		FlatID:      user.FlatID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      model.ComplaintStatusOpen,
		Priority:    priority,
	}
	if result := database.GetDB().Create(&complaint); result.Error != nil {
		log.Error("Failed to create complaint", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create complaint"})
	}

	log.Info("Complaint created",
		zap.Uint("complaint_id", complaint.ID),
		zap.String("priority", complaint.Priority))
	return c.JSON(http.StatusCreated, complaint)
}

// ComplaintUpdateRequest carries the mutable complaint fields; nil
// pointers mean "leave unchanged"
type ComplaintUpdateRequest struct {
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	AssignedTo *uint   `json:"assigned_to,omitempty"`
}

func UpdateComplaint(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var complaint model.Complaint
	if result := db.First(&complaint, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
	}

	var req ComplaintUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Status != nil {
		complaint.Status = *req.Status
	}
	if req.Priority != nil {
		complaint.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		complaint.AssignedTo = req.AssignedTo
	}

	if result := db.Save(&complaint); result.Error != nil {
		log.Error("Failed to update complaint", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update complaint"})
	}

	log.Info("Complaint updated",
		zap.Uint("complaint_id", complaint.ID),
		zap.String("status", complaint.Status))
	return c.JSON(http.StatusOK, complaint)
}
