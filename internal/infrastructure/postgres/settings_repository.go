package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre PostgreSQL.
// La tabla stock_settings tiene una sola fila (id = 1).
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository construye el adaptador de configuración.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get devuelve la configuración persistida o nil si aún no se guardó ninguna.
func (r *SettingsRepo) Get() (*entity.StockSettings, error) {
	query := `
		SELECT low_stock_threshold, critical_threshold, webhook_url, updated_at, updated_by
		FROM stock_settings WHERE id = 1`
	var s entity.StockSettings
	err := r.pool.QueryRow(context.Background(), query).Scan(
		&s.LowStockThreshold, &s.CriticalThreshold, &s.WebhookURL, &s.UpdatedAt, &s.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Save inserta o actualiza la fila única de configuración.
func (r *SettingsRepo) Save(settings *entity.StockSettings) error {
	query := `
		INSERT INTO stock_settings (id, low_stock_threshold, critical_threshold, webhook_url, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET low_stock_threshold = EXCLUDED.low_stock_threshold,
		              critical_threshold = EXCLUDED.critical_threshold,
		              webhook_url = EXCLUDED.webhook_url,
		              updated_at = EXCLUDED.updated_at,
		              updated_by = EXCLUDED.updated_by`
	_, err := r.pool.Exec(context.Background(), query,
		settings.LowStockThreshold, settings.CriticalThreshold, settings.WebhookURL,
		settings.UpdatedAt, settings.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
