package handler

import (
	"fmt"
	"net/http"

	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/pkg/database"
	"nestify/pkg/googleauth"
	"nestify/pkg/jwtutil"
	"nestify/pkg/logger"
	"nestify/pkg/otp"
	"nestify/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	otpStore     otp.Store
	googleClient *googleauth.Client
)

// InitAuth wires the OTP store and Google OAuth client used by the
// auth handlers
func InitAuth(store otp.Store, gc *googleauth.Client) {
	otpStore = store
	googleClient = gc
}

// RegisterRequest defines the structure for user registration
type RegisterRequest struct {
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	SocietyID *uint   `json:"society_id,omitempty"`
	FlatID    *uint   `json:"flat_id,omitempty"`
	IsOwner   bool    `json:"is_owner"`
}

func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	db := database.GetDB()
	if req.Email != nil && *req.Email != "" {
		var existing model.User
		if result := db.Where("email = ?", *req.Email).First(&existing); result.Error == nil {
			log.Warn("Email already registered", zap.String("email", *req.Email))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
		}
	}
	if req.Phone != nil && *req.Phone != "" {
		var existing model.User
		if result := db.Where("phone = ?", *req.Phone).First(&existing); result.Error == nil {
			log.Warn("Phone already registered", zap.String("phone", *req.Phone))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone already registered"})
		}
	}

	var passwordHash string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
		passwordHash = string(hashed)
	}

	role := req.Role
	if role == "" {
		role = model.RoleResident
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         role,
		SocietyID:    req.SocietyID,
		FlatID:       req.FlatID,
		IsOwner:      req.IsOwner,
	}
	if result := db.Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, user)
}

func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil || user.PasswordHash == "" {
		log.Warn("Login failed, user not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Login failed, invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func SendOTP(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.OTPSendCounter.Inc()

	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}

	code := otp.GenerateCode()
	if err := otpStore.Set(c.Request().Context(), req.Phone, code); err != nil {
		log.Error("Failed to store OTP", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send OTP"})
	}

	// Mock SMS: log the code instead of sending it
	log.Info("[MOCK SMS] OTP issued", zap.String("phone", req.Phone), zap.String("otp", code))

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("OTP sent to %s", req.Phone),
		"otp_dev": code,
	})
}

func VerifyOTP(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
		Name  string `json:"name,omitempty"`
	}
	if err := c.Bind(&req); err != nil || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone and otp are required"})
	}

	ok, err := otpStore.Verify(c.Request().Context(), req.Phone, req.OTP)
	if err != nil {
		log.Error("OTP verification failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify OTP"})
	}
	if !ok {
		prometheus.RecordAuthError("invalid_otp")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired OTP"})
	}

	db := database.GetDB()
	var user model.User
	result := db.Where("phone = ?", req.Phone).First(&user)
	if result.Error != nil {
		// Auto-register on first OTP login
		name := req.Name
		if name == "" {
			suffix := req.Phone
			if len(suffix) > 4 {
				suffix = suffix[len(suffix)-4:]
			}
			name = "User-" + suffix
		}
		phone := req.Phone
		user = model.User{
			Name:  name,
			Phone: &phone,
			Role:  model.RoleResident,
		}
		if result := db.Create(&user); result.Error != nil {
			log.Error("Failed to auto-register OTP user", zap.Error(result.Error))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
		log.Info("User auto-registered via OTP", zap.Uint("user_id", user.ID))
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in via OTP", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func GoogleLoginURL(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"url": googleClient.AuthURL()})
}

func GoogleCallback(c echo.Context) error {
	log := logger.FromContext(c)

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	info, err := googleClient.Exchange(c.Request().Context(), code)
	if err != nil {
		log.Error("Google authentication failed", zap.Error(err))
		prometheus.RecordAuthError("google_exchange_failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Google authentication failed"})
	}

	db := database.GetDB()
	var user model.User
	result := db.Where("google_id = ?", info.ID).First(&user)
	if result.Error != nil {
		// Link by email, or create a fresh resident account
		result = db.Where("email = ?", info.Email).First(&user)
		if result.Error == nil {
			user.GoogleID = &info.ID
			user.AvatarURL = info.Picture
		} else {
			name := info.Name
			if name == "" {
				name = info.Email
			}
			email := info.Email
			user = model.User{
				Name:      name,
				Email:     &email,
				GoogleID:  &info.ID,
				AvatarURL: info.Picture,
				Role:      model.RoleResident,
			}
		}
		if err := db.Save(&user).Error; err != nil {
			log.Error("Failed to persist Google user", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
		log.Info("Google account linked", zap.Uint("user_id", user.ID))
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
