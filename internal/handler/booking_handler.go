package handler

import (
	"net/http"

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

// ListBookings returns the society's bookings with optional facility
// and date filters. An unparseable date filter is ignored rather than
// rejected.
func ListBookings(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	query := db.Order("booking_date desc")
	if user.SocietyID != nil {
		query = query.Where("society_id = ?", *user.SocietyID)
	}
	if facility := c.QueryParam("facility"); facility != "" {
		query = query.Where("facility_name = ?", facility)
	}
	if dateParam := c.QueryParam("booking_date"); dateParam != "" {
		if date, err := schedule.ParseDate(dateParam); err == nil {
			query = query.Where("booking_date = ?", date)
		} else {
			log.Warn("Ignoring invalid booking_date filter", zap.String("value", dateParam))
		}
	}

	var bookings []model.Booking
	if result := query.Find(&bookings); result.Error != nil {
		log.Error("Failed to list bookings", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// BookingRequest defines the structure for a facility reservation
type BookingRequest struct {
	SocietyID    *uint  `json:"society_id,omitempty"`
	FacilityName string `json:"facility_name"`
	BookingDate  string `json:"booking_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// CreateBooking reserves a facility slot after checking that no
// confirmed booking overlaps the requested half-open interval
func CreateBooking(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var req BookingRequest
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

	bookingDate, err := schedule.ParseDate(req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_date, use YYYY-MM-DD"})
	}
	start, err := schedule.ParseClock(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time, use HH:MM"})
	}
	end, err := schedule.ParseClock(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time, use HH:MM"})
	}
	if start >= end {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start time must be before end time"})
	}

	conflict, err := schedule.FindConflict(db, *societyID, req.FacilityName, bookingDate, start, end)
	if err != nil {
		log.Error("Conflict scan failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if conflict != nil {
		prometheus.BookingConflictCounter.Inc()
		log.Warn("Booking rejected, slot taken",
			zap.String("facility", req.FacilityName),
			zap.String("start", start),
			zap.String("end", end),
			zap.Uint("conflicting_booking", conflict.ID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already booked for this facility"})
	}

	booking := model.Booking{
		SocietyID:    *societyID,
		UserID:       user.ID,
		FacilityName: req.FacilityName,
		BookingDate:  bookingDate,
		StartTime:    start,
		EndTime:      end,
		Status:       model.BookingStatusConfirmed,
	}
	if result := db.Create(&booking); result.Error != nil {
		log.Error("Failed to create booking", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	log.Info("Booking confirmed",
		zap.Uint("booking_id", booking.ID),
		zap.String("facility", booking.FacilityName),
		zap.String("start", booking.StartTime),
		zap.String("end", booking.EndTime))
	return c.JSON(http.StatusCreated, booking)
}

// CancelBooking soft-deletes a booking; only the owner or an admin
// may cancel
func CancelBooking(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var booking model.Booking
	if result := db.First(&booking, c.Param("id")); result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}

	if !policy.CanActOn(user, booking.UserID) {
		log.Warn("Cancel rejected, not owner or admin",
			zap.Uint("booking_id", booking.ID),
			zap.Uint("user_id", user.ID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	if err := db.Model(&booking).Update("status", model.BookingStatusCancelled).Error; err != nil {
		log.Error("Failed to cancel booking", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}

	log.Info("Booking cancelled", zap.Uint("booking_id", booking.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}
