package repository

import "github.com/mcalvo/bracket-tracker-api/internal/domain/entity"

// SettingsRepository define el puerto para la configuración global (fila única).
type SettingsRepository interface {
	Get() (*entity.StockSettings, error)
	Save(settings *entity.StockSettings) error
}
