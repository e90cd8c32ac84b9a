package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"menvy/internal/domain"
)

const settingsColumns = `id, store_name, store_address, store_phone, store_email, vat_number,
	       currency, timezone, date_format, language,
	       receipt_footer, show_vat, vat_rate, auto_print,
	       email_notifications, sms_notifications, low_stock_alerts, daily_reports,
	       session_timeout_hours, max_login_attempts, lockout_minutes,
	       enable_whatsapp, whatsapp_api_key, whatsapp_instance_id, whatsapp_message,
	       business_hours, created_at, updated_at`

type MySQLSettingsRepository struct {
	db *sql.DB
}

func NewMySQLSettingsRepository(db *sql.DB) *MySQLSettingsRepository {
	return &MySQLSettingsRepository{db: db}
}

// Get returns the single settings row, creating it from defaults on first
// read so callers always see a complete document.
func (r *MySQLSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s, err := r.scanOne(ctx)
	if err == sql.ErrNoRows {
		defaults := domain.DefaultSettings()
		now := time.Now().UTC()
		defaults.CreatedAt = now
		defaults.UpdatedAt = now
		if err := r.insert(ctx, &defaults); err != nil {
			return nil, err
		}
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

func (r *MySQLSettingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	query := `
		UPDATE settings SET
			store_name = ?, store_address = ?, store_phone = ?, store_email = ?, vat_number = ?,
			currency = ?, timezone = ?, date_format = ?, language = ?,
			receipt_footer = ?, show_vat = ?, vat_rate = ?, auto_print = ?,
			email_notifications = ?, sms_notifications = ?, low_stock_alerts = ?, daily_reports = ?,
			session_timeout_hours = ?, max_login_attempts = ?, lockout_minutes = ?,
			enable_whatsapp = ?, whatsapp_api_key = ?, whatsapp_instance_id = ?, whatsapp_message = ?,
			business_hours = ?, updated_at = ?
		WHERE id = 1
	`

	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		s.StoreName, s.StoreAddress, s.StorePhone, s.StoreEmail, s.VatNumber,
		s.Currency, s.Timezone, s.DateFormat, s.Language,
		s.ReceiptFooter, s.ShowVAT, s.VatRate, s.AutoPrint,
		s.EmailNotifications, s.SmsNotifications, s.LowStockAlerts, s.DailyReports,
		s.SessionTimeoutHours, s.MaxLoginAttempts, s.LockoutMinutes,
		s.EnableWhatsApp, s.WhatsAppAPIKey, s.WhatsAppInstanceID, s.WhatsAppMessage,
		s.BusinessHours, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Row missing entirely; seed it with the submitted values.
		now := time.Now().UTC()
		s.CreatedAt = now
		return r.insert(ctx, s)
	}

	return nil
}

func (r *MySQLSettingsRepository) scanOne(ctx context.Context) (*domain.Settings, error) {
	query := fmt.Sprintf(`SELECT %s FROM settings WHERE id = 1`, settingsColumns)

	var s domain.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.StoreName, &s.StoreAddress, &s.StorePhone, &s.StoreEmail, &s.VatNumber,
		&s.Currency, &s.Timezone, &s.DateFormat, &s.Language,
		&s.ReceiptFooter, &s.ShowVAT, &s.VatRate, &s.AutoPrint,
		&s.EmailNotifications, &s.SmsNotifications, &s.LowStockAlerts, &s.DailyReports,
		&s.SessionTimeoutHours, &s.MaxLoginAttempts, &s.LockoutMinutes,
		&s.EnableWhatsApp, &s.WhatsAppAPIKey, &s.WhatsAppInstanceID, &s.WhatsAppMessage,
		&s.BusinessHours, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MySQLSettingsRepository) insert(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO settings
			(id, store_name, store_address, store_phone, store_email, vat_number,
			 currency, timezone, date_format, language,
			 receipt_footer, show_vat, vat_rate, auto_print,
			 email_notifications, sms_notifications, low_stock_alerts, daily_reports,
			 session_timeout_hours, max_login_attempts, lockout_minutes,
			 enable_whatsapp, whatsapp_api_key, whatsapp_instance_id, whatsapp_message,
			 business_hours, created_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.StoreName, s.StoreAddress, s.StorePhone, s.StoreEmail, s.VatNumber,
		s.Currency, s.Timezone, s.DateFormat, s.Language,
		s.ReceiptFooter, s.ShowVAT, s.VatRate, s.AutoPrint,
		s.EmailNotifications, s.SmsNotifications, s.LowStockAlerts, s.DailyReports,
		s.SessionTimeoutHours, s.MaxLoginAttempts, s.LockoutMinutes,
		s.EnableWhatsApp, s.WhatsAppAPIKey, s.WhatsAppInstanceID, s.WhatsAppMessage,
		s.BusinessHours, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting settings: %w", err)
	}
	return nil
}
