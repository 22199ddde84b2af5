// Command seed populates a development database with showcase data.
// It is idempotent: when a society already exists it does nothing.
package main

import (
	"fmt"
	"time"

	"nestify/internal/model"
	"nestify/pkg/config"
	"nestify/pkg/database"
	"nestify/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	db := database.GetDB()

	var existing model.Society
	if result := db.First(&existing); result.Error == nil {
		log.Info("Seed data already exists, skipping")
		return
	}

	// The whole seed runs in one transaction so a failure leaves the
	// database untouched.
	if err := db.Transaction(seed); err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Seed data created")
}

func strptr(s string) *string { return &s }

func hash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hashed)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(tx *gorm.DB) error {
	society := model.Society{
		Name:    "Emerald Heights",
		Address: "123 Park Avenue, Sector 42",
		City:    "Bangalore",
		State:   "Karnataka",
		Pincode: "560001",
	}
	society2 := model.Society{
		Name:    "Royal Gardens",
		Address: "456 Lake View Road, Whitefield",
		City:    "Bangalore",
		State:   "Karnataka",
		Pincode: "560066",
	}
	if err := tx.Create(&society).Error; err != nil {
		return err
	}
	if err := tx.Create(&society2).Error; err != nil {
		return err
	}

	towerA := model.Tower{SocietyID: society.ID, Name: "Tower A - Diamond", TotalFloors: 15}
	towerB := model.Tower{SocietyID: society.ID, Name: "Tower B - Sapphire", TotalFloors: 12}
	if err := tx.Create(&towerA).Error; err != nil {
		return err
	}
	if err := tx.Create(&towerB).Error; err != nil {
		return err
	}

	var flats []model.Flat
	for floor := 1; floor <= 5; floor++ {
		for unit := 1; unit <= 4; unit++ {
			flats = append(flats, model.Flat{
				TowerID:    towerA.ID,
				FlatNumber: fmt.Sprintf("A-%d0%d", floor, unit),
				Floor:      floor,
				AreaSqft:   950 + float64(unit)*150,
				FlatType:   flatType(unit),
			})
		}
	}
	if err := tx.Create(&flats).Error; err != nil {
		return err
	}

	admin := model.User{
		Name:         "Arjun Mehta",
		Email:        strptr("admin@nestify.dev"),
		PasswordHash: hash("admin123"),
		Role:         model.RoleAdmin,
		SocietyID:    &society.ID,
	}
	treasurer := model.User{
		Name:         "Kavita Rao",
		Email:        strptr("treasurer@nestify.dev"),
		PasswordHash: hash("treasurer123"),
		Role:         model.RoleTreasurer,
		SocietyID:    &society.ID,
	}
	guard := model.User{
		Name:         "Ram Singh",
		Email:        strptr("security@nestify.dev"),
		PasswordHash: hash("security123"),
		Role:         model.RoleSecurity,
		SocietyID:    &society.ID,
	}
	resident := model.User{
		Name:         "Priya Sharma",
		Email:        strptr("priya@nestify.dev"),
		Phone:        strptr("+919876543210"),
		PasswordHash: hash("resident123"),
		Role:         model.RoleResident,
		SocietyID:    &society.ID,
		FlatID:       &flats[0].ID,
		IsOwner:      true,
	}
	for _, u := range []*model.User{&admin, &treasurer, &guard, &resident} {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	invoices := []model.MaintenanceInvoice{
		{
			SocietyID: society.ID, FlatID: flats[0].ID,
			Amount: 5000, TotalAmount: 5000,
			DueDate: date(now.Year(), now.Month(), 10),
			Month:   int(now.Month()), Year: now.Year(),
			Status: model.InvoiceStatusPending,
		},
		{
			SocietyID: society.ID, FlatID: flats[0].ID,
			Amount: 5000, TotalAmount: 5000,
			DueDate: date(now.Year(), now.Month(), 10).AddDate(0, -1, 0),
			Month:   int(now.AddDate(0, -1, 0).Month()), Year: now.AddDate(0, -1, 0).Year(),
			Status: model.InvoiceStatusPending,
		},
		{
			SocietyID: society.ID, FlatID: flats[1].ID,
			Amount: 6500, TotalAmount: 6500,
			DueDate: date(now.Year(), now.Month(), 10).AddDate(0, -2, 0),
			Month:   int(now.AddDate(0, -2, 0).Month()), Year: now.AddDate(0, -2, 0).Year(),
			Status: model.InvoiceStatusPaid,
		},
	}
	if err := tx.Create(&invoices).Error; err != nil {
		return err
	}

	payment := model.Payment{
		InvoiceID:     invoices[2].ID,
		UserID:        resident.ID,
		Amount:        6500,
		PaymentMethod: "upi",
		TransactionID: "UPI-20260615-0042",
	}
	if err := tx.Create(&payment).Error; err != nil {
		return err
	}

	complaint := model.Complaint{
		SocietyID:   society.ID,
		UserID:      resident.ID,
		FlatID:      resident.FlatID,
		Title:       "Water leakage in bathroom ceiling",
		Description: "Persistent dripping from the flat above after heavy rain.",
		Status:      model.ComplaintStatusOpen,
		Priority:    model.PriorityHigh,
	}
	if err := tx.Create(&complaint).Error; err != nil {
		return err
	}

	visitor := model.Visitor{
		SocietyID:    society.ID,
		FlatID:       flats[0].ID,
		VisitorName:  "Amazon Delivery",
		VisitorPhone: "+919812345678",
		Purpose:      "Package delivery",
		Status:       model.VisitorStatusPending,
	}
	if err := tx.Create(&visitor).Error; err != nil {
		return err
	}

	notice := model.Notice{
		SocietyID: society.ID,
		Title:     "Annual General Meeting",
		Content:   "The AGM will be held in the clubhouse on Saturday at 10 AM.",
		Category:  "event",
		CreatedBy: admin.ID,
		IsActive:  true,
	}
	if err := tx.Create(&notice).Error; err != nil {
		return err
	}

	booking := model.Booking{
		SocietyID:    society.ID,
		UserID:       resident.ID,
		FacilityName: "party_hall",
		BookingDate:  date(now.Year(), now.Month(), now.Day()).AddDate(0, 0, 7),
		StartTime:    "18:00",
		EndTime:      "22:00",
		Status:       model.BookingStatusConfirmed,
	}
	if err := tx.Create(&booking).Error; err != nil {
		return err
	}

	poll := model.Poll{
		SocietyID: society.ID,
		Question:  "Should the gym timings be extended to 11 PM?",
		CreatedBy: admin.ID,
		IsActive:  true,
	}
	if err := poll.SetOptions([]string{"Yes", "No", "Weekends only"}); err != nil {
		return err
	}
	if err := tx.Create(&poll).Error; err != nil {
		return err
	}

	vote := model.Vote{PollID: poll.ID, UserID: resident.ID, OptionIndex: 0}
	return tx.Create(&vote).Error
}

func flatType(unit int) string {
	switch unit {
	case 1:
		return "1BHK"
	case 2, 3:
		return "2BHK"
	default:
		return "3BHK"
	}
}
