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

// SocietyRequest defines the structure for society creation
type SocietyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// ListSocieties returns every society for admins, otherwise only the
// caller's own
func ListSocieties(c echo.Context) error {
	user := middleware.CurrentUser(c)
	db := database.GetDB()

	var societies []model.Society
	query := db
	if !policy.IsAdmin(user) {
		if user.SocietyID == nil {
			return c.JSON(http.StatusOK, []model.Society{})
		}
		query = query.Where("id = ?", *user.SocietyID)
	}
	if result := query.Find(&societies); result.Error != nil {
		logger.FromContext(c).Error("Failed to list societies", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve societies"})
	}
	return c.JSON(http.StatusOK, societies)
}

func CreateSociety(c echo.Context) error {
	log := logger.FromContext(c)
	user := middleware.CurrentUser(c)

	var req SocietyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	db := database.GetDB()
	society := model.Society{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
	}
	if result := db.Create(&society); result.Error != nil {
		log.Error("Failed to create society", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create society"})
	}

	// Adopt the creating admin into the new society when unassigned
	if user.SocietyID == nil {
		user.SocietyID = &society.ID
		if err := db.Model(user).Update("society_id", society.ID).Error; err != nil {
			log.Error("Failed to assign admin to society", zap.Error(err))
		}
	}

	log.Info("Society created", zap.Uint("society_id", society.ID), zap.String("name", society.Name))
	return c.JSON(http.StatusCreated, society)
}

func GetSociety(c echo.Context) error {
	var society model.Society
	result := database.GetDB().First(&society, c.Param("id"))
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "society not found"})
	}
	return c.JSON(http.StatusOK, society)
}

// --- Towers ---

// TowerRequest defines the structure for tower creation
type TowerRequest struct {
	SocietyID   uint   `json:"society_id"`
	Name        string `json:"name"`
	TotalFloors int    `json:"total_floors"`
}

func ListTowers(c echo.Context) error {
	var towers []model.Tower
	result := database.GetDB().Where("society_id = ?", c.Param("id")).Find(&towers)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve towers"})
	}
	return c.JSON(http.StatusOK, towers)
}

func CreateTower(c echo.Context) error {
	log := logger.FromContext(c)

	var req TowerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tower := model.Tower{
		SocietyID:   req.SocietyID,
		Name:        req.Name,
		TotalFloors: req.TotalFloors,
	}
	if tower.TotalFloors == 0 {
		tower.TotalFloors = 1
	}
	if result := database.GetDB().Create(&tower); result.Error != nil {
		log.Error("Failed to create tower", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tower"})
	}

	log.Info("Tower created", zap.Uint("tower_id", tower.ID), zap.Uint("society_id", tower.SocietyID))
	return c.JSON(http.StatusCreated, tower)
}

// --- Flats ---

// FlatRequest defines the structure for flat creation
type FlatRequest struct {
	TowerID    uint    `json:"tower_id"`
	FlatNumber string  `json:"flat_number"`
	Floor      int     `json:"floor"`
	AreaSqft   float64 `json:"area_sqft"`
	FlatType   string  `json:"flat_type"`
}

func ListFlats(c echo.Context) error {
	var flats []model.Flat
	result := database.GetDB().Where("tower_id = ?", c.Param("id")).Find(&flats)
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve flats"})
	}
	return c.JSON(http.StatusOK, flats)
}

func CreateFlat(c echo.Context) error {
	log := logger.FromContext(c)

	var req FlatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	flat := model.Flat{
		TowerID:    req.TowerID,
		FlatNumber: req.FlatNumber,
		Floor:      req.Floor,
		AreaSqft:   req.AreaSqft,
		FlatType:   req.FlatType,
	}
	if result := database.GetDB().Create(&flat); result.Error != nil {
		log.Error("Failed to create flat", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create flat"})
	}

	log.Info("Flat created", zap.Uint("flat_id", flat.ID), zap.Uint("tower_id", flat.TowerID))
	return c.JSON(http.StatusCreated, flat)
}
