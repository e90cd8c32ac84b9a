package domain

import "time"

// Settings is the single shop-wide configuration row consumed by receipt
// rendering, notifications and the auth layer. The transaction engine does
// not read it.
type Settings struct {
	ID           int
	StoreName    string
	StoreAddress string
	StorePhone   string
	StoreEmail   string
	VatNumber    string

	Currency   string
	Timezone   string
	DateFormat string
	Language   string

	ReceiptFooter string
	ShowVAT       bool
	VatRate       float64
	AutoPrint     bool

	EmailNotifications bool
	SmsNotifications   bool
	LowStockAlerts     bool
	DailyReports       bool

	SessionTimeoutHours int
	MaxLoginAttempts    int
	LockoutMinutes      int

	EnableWhatsApp     bool
	WhatsAppAPIKey     string
	WhatsAppInstanceID string
	WhatsAppMessage    string

	// BusinessHours holds the weekly schedule as a JSON document, one entry
	// per weekday with open/close/closed fields.
	BusinessHours string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings mirrors the values the shop ships with before an admin
// saves anything.
func DefaultSettings() Settings {
	return Settings{
		ID:                  1,
		StoreName:           "Menvy",
		StoreAddress:        "Magura, Bangladesh",
		StorePhone:          "01708-446607",
		StoreEmail:          "contact@menvy.store",
		Currency:            "BDT",
		Timezone:            "Asia/Dhaka",
		DateFormat:          "DD/MM/YYYY",
		Language:            "en",
		ReceiptFooter:       "Thank you for shopping with us!",
		ShowVAT:             true,
		VatRate:             0,
		EmailNotifications:  true,
		LowStockAlerts:      true,
		DailyReports:        true,
		SessionTimeoutHours: 24,
		MaxLoginAttempts:    5,
		LockoutMinutes:      30,
		BusinessHours:       defaultBusinessHours,
	}
}

const defaultBusinessHours = `{"monday":{"open":"10:00","close":"22:00","closed":false},"tuesday":{"open":"10:00","close":"22:00","closed":false},"wednesday":{"open":"10:00","close":"22:00","closed":false},"thursday":{"open":"10:00","close":"22:00","closed":false},"friday":{"open":"10:00","close":"22:00","closed":true},"saturday":{"open":"10:00","close":"22:00","closed":false},"sunday":{"open":"10:00","close":"22:00","closed":false}}`
