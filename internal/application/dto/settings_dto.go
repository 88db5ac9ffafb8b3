package dto

import "time"

// SettingsResponse configuración global vigente.
type SettingsResponse struct {
	LowStockThreshold int64     `json:"low_stock_threshold"`
	CriticalThreshold int64     `json:"critical_threshold"`
	WebhookURL        string    `json:"webhook_url,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
	UpdatedBy         string    `json:"updated_by,omitempty"`
}

// UpdateSettingsRequest body para PUT /api/settings (solo admin).
// Campos nil = sin cambio.
type UpdateSettingsRequest struct {
	LowStockThreshold *int64  `json:"low_stock_threshold,omitempty"`
	CriticalThreshold *int64  `json:"critical_threshold,omitempty"`
	WebhookURL        *string `json:"webhook_url,omitempty"`
}
