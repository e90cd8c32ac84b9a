package dto

import (
	"encoding/json"
	"time"

	"menvy/internal/domain"
)

type SettingsDTO struct {
	StoreName    string `json:"storeName"`
	StoreAddress string `json:"storeAddress"`
	StorePhone   string `json:"storePhone"`
	StoreEmail   string `json:"storeEmail"`
	VatNumber    string `json:"vatNumber"`

	Currency   string `json:"currency"`
	Timezone   string `json:"timezone"`
	DateFormat string `json:"dateFormat"`
	Language   string `json:"language"`

	ReceiptFooter string  `json:"receiptFooter"`
	ShowVAT       bool    `json:"showVAT"`
	VatRate       float64 `json:"vatRate"`
	AutoPrint     bool    `json:"autoPrint"`

	EmailNotifications bool `json:"emailNotifications"`
	SmsNotifications   bool `json:"smsNotifications"`
	LowStockAlerts     bool `json:"lowStockAlerts"`
	DailyReports       bool `json:"dailyReports"`

	SessionTimeoutHours int `json:"sessionTimeout"`
	MaxLoginAttempts    int `json:"maxLoginAttempts"`
	LockoutMinutes      int `json:"lockoutDuration"`

	EnableWhatsApp     bool   `json:"enableWhatsApp"`
	WhatsAppAPIKey     string `json:"whatsappApiKey"`
	WhatsAppInstanceID string `json:"whatsappInstanceId"`
	WhatsAppMessage    string `json:"whatsappMessage"`

	BusinessHours json.RawMessage `json:"businessHours"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSettingsDTO(s *domain.Settings) SettingsDTO {
	return SettingsDTO{
		StoreName:           s.StoreName,
		StoreAddress:        s.StoreAddress,
		StorePhone:          s.StorePhone,
		StoreEmail:          s.StoreEmail,
		VatNumber:           s.VatNumber,
		Currency:            s.Currency,
		Timezone:            s.Timezone,
		DateFormat:          s.DateFormat,
		Language:            s.Language,
		ReceiptFooter:       s.ReceiptFooter,
		ShowVAT:             s.ShowVAT,
		VatRate:             s.VatRate,
		AutoPrint:           s.AutoPrint,
		EmailNotifications:  s.EmailNotifications,
		SmsNotifications:    s.SmsNotifications,
		LowStockAlerts:      s.LowStockAlerts,
		DailyReports:        s.DailyReports,
		SessionTimeoutHours: s.SessionTimeoutHours,
		MaxLoginAttempts:    s.MaxLoginAttempts,
		LockoutMinutes:      s.LockoutMinutes,
		EnableWhatsApp:      s.EnableWhatsApp,
		WhatsAppAPIKey:      s.WhatsAppAPIKey,
		WhatsAppInstanceID:  s.WhatsAppInstanceID,
		WhatsAppMessage:     s.WhatsAppMessage,
		BusinessHours:       json.RawMessage(s.BusinessHours),
		UpdatedAt:           s.UpdatedAt,
	}
}

func (d SettingsDTO) ToDomain() domain.Settings {
	return domain.Settings{
		ID:                  1,
		StoreName:           d.StoreName,
		StoreAddress:        d.StoreAddress,
		StorePhone:          d.StorePhone,
		StoreEmail:          d.StoreEmail,
		VatNumber:           d.VatNumber,
		Currency:            d.Currency,
		Timezone:            d.Timezone,
		DateFormat:          d.DateFormat,
		Language:            d.Language,
		ReceiptFooter:       d.ReceiptFooter,
		ShowVAT:             d.ShowVAT,
		VatRate:             d.VatRate,
		AutoPrint:           d.AutoPrint,
		EmailNotifications:  d.EmailNotifications,
		SmsNotifications:    d.SmsNotifications,
		LowStockAlerts:      d.LowStockAlerts,
		DailyReports:        d.DailyReports,
		SessionTimeoutHours: d.SessionTimeoutHours,
		MaxLoginAttempts:    d.MaxLoginAttempts,
		LockoutMinutes:      d.LockoutMinutes,
		EnableWhatsApp:      d.EnableWhatsApp,
		WhatsAppAPIKey:      d.WhatsAppAPIKey,
		WhatsAppInstanceID:  d.WhatsAppInstanceID,
		WhatsAppMessage:     d.WhatsAppMessage,
		BusinessHours:       string(d.BusinessHours),
	}
}
