package handler

import (
	"net/http"
	"time"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/internal/policy"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListVisitors returns the society-wide visitor log for admin and
// security roles (capped at the most recent 100 entries), and the
// caller's own flat's visitors otherwise
func ListVisitors(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var visitors []model.Visitor
	switch {
	case policy.CanOverseeVisitors(user) && user.SocietyID != nil:
		if result := db.Where("society_id = ?", *user.SocietyID).
			Order("created_at desc").Limit(100).Find(&visitors); result.Error != nil {
			log.Error("Failed to list visitors", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve visitors"})
		}
	case user.FlatID != nil:
		if result := db.Where("flat_id = ?", *user.FlatID).
			Order("created_at desc").Find(&visitors); result.Error != nil {
			log.Error("Failed to list visitors", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve visitors"})
		}
	default:
		return c.JSON(http.StatusOK, []model.Visitor{})
	}
	return c.JSON(http.StatusOK, visitors)
}

// VisitorRequest defines the structure for a gate entry
type VisitorRequest struct {
	SocietyID     *uint  `json:"society_id,omitempty"`
	FlatID        uint   `json:"flat_id"`
	VisitorName   string `json:"visitor_name"`
	VisitorPhone  string `json:"visitor_phone"`
	Purpose       string `json:"purpose"`
	VehicleNumber string `json:"vehicle_number"`
}

func AddVisitor(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req VisitorRequest
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

	visitor := model.Visitor{
		SocietyID:     *societyID,
		FlatID:        req.FlatID,
		VisitorName:   req.VisitorName,
		VisitorPhone:  req.VisitorPhone,
		Purpose:       req.Purpose,
		VehicleNumber: req.VehicleNumber,
		Status:        model.VisitorStatusPending,
	}
	if result := database.GetDB().Create(&visitor); result.Error != nil {
		log.Error("Failed to add visitor", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add visitor"})
	}

	log.Info("Visitor logged at gate",
		zap.Uint("visitor_id", visitor.ID),
		zap.Uint("flat_id", visitor.FlatID))
	return c.JSON(http.StatusCreated, visitor)
}

// ApproveVisitor marks a pending visitor approved and records who
// approved them
func ApproveVisitor(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var visitor model.Visitor
	if result := db.First(&visitor, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "visitor not found"})
	}

	visitor.Status = model.VisitorStatusApproved
	visitor.ApprovedBy = &user.ID
	if result := db.Save(&visitor); result.Error != nil {
		log.Error("Failed to approve visitor", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to approve visitor"})
	}

	log.Info("Visitor approved",
		zap.Uint("visitor_id", visitor.ID),
		zap.Uint("approved_by", user.ID))
	return c.JSON(http.StatusOK, visitor)
}

// CheckoutVisitor records the visitor's exit
func CheckoutVisitor(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var visitor model.Visitor
	if result := db.First(&visitor, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "visitor not found"})
	}

	now := time.Now().UTC()
	visitor.Status = model.VisitorStatusCheckedOut
	visitor.ExitTime = &now
	if result := db.Save(&visitor); result.Error != nil {
		log.Error("Failed to check out visitor", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check out visitor"})
	}

	log.Info("Visitor checked out", zap.Uint("visitor_id", visitor.ID))
	return c.JSON(http.StatusOK, visitor)
}
