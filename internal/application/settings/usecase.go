// Package settings gestiona la configuración global: umbrales de clasificación
// de stock y webhook de alertas. Fila única, editable solo por admin.
package settings

import (
	"strings"
	"sync"
	"time"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// Defaults aplicados cuando la BD aún no tiene configuración persistida.
const (
	DefaultLowThreshold      = 10
	DefaultCriticalThreshold = 3
)

// SettingsUseCase mantiene la configuración en memoria y la persiste al
// cambiar. La copia en memoria evita una lectura de BD por cada clasificación
// de stock.
type SettingsUseCase struct {
	repo repository.SettingsRepository

	mu      sync.RWMutex
	current entity.StockSettings
}

// NewSettingsUseCase carga la configuración persistida; si no existe usa los
// defaults sin escribirlos todavía.
func NewSettingsUseCase(repo repository.SettingsRepository) (*SettingsUseCase, error) {
	uc := &SettingsUseCase{
		repo: repo,
		current: entity.StockSettings{
			LowStockThreshold: DefaultLowThreshold,
			CriticalThreshold: DefaultCriticalThreshold,
		},
	}
	stored, err := repo.Get()
	if err != nil {
		return nil, err
	}
	if stored != nil {
		uc.current = *stored
	}
	return uc, nil
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get() entity.StockSettings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// Thresholds devuelve (critical, low) para la clasificación de stock.
func (uc *SettingsUseCase) Thresholds() (int64, int64) {
	s := uc.Get()
	return s.CriticalThreshold, s.LowStockThreshold
}

// WebhookURL devuelve el endpoint de alertas vigente; vacío = deshabilitado.
func (uc *SettingsUseCase) WebhookURL() string {
	return uc.Get().WebhookURL
}

// Update aplica los campos presentes (nil = sin cambio), valida y persiste.
// Los umbrales deben ser >= 0 y critical no puede superar low.
func (uc *SettingsUseCase) Update(low, critical *int64, webhookURL *string, updatedBy string) (entity.StockSettings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current
	if low != nil {
		next.LowStockThreshold = *low
	}
	if critical != nil {
		next.CriticalThreshold = *critical
	}
	if webhookURL != nil {
		next.WebhookURL = strings.TrimSpace(*webhookURL)
	}
	if next.LowStockThreshold < 0 || next.CriticalThreshold < 0 || next.CriticalThreshold > next.LowStockThreshold {
		return entity.StockSettings{}, domain.ErrInvalidInput
	}
	next.UpdatedAt = time.Now()
	next.UpdatedBy = updatedBy
	if err := uc.repo.Save(&next); err != nil {
		return entity.StockSettings{}, err
	}
	uc.current = next
	return next, nil
}
