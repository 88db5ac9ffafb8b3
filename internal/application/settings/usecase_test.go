package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/testsupport"
)

func TestNewSettingsUseCase_DefaultsSinPersistencia(t *testing.T) {
	uc, err := NewSettingsUseCase(testsupport.NewMemorySettingsRepo())
	require.NoError(t, err)

	critical, low := uc.Thresholds()
	assert.Equal(t, int64(DefaultCriticalThreshold), critical)
	assert.Equal(t, int64(DefaultLowThreshold), low)
	assert.Empty(t, uc.WebhookURL())
}

func TestNewSettingsUseCase_CargaPersistida(t *testing.T) {
	repo := testsupport.NewMemorySettingsRepo()
	require.NoError(t, repo.Save(&entity.StockSettings{
		LowStockThreshold: 20,
		CriticalThreshold: 5,
		WebhookURL:        "https://chat.test/hook",
	}))

	uc, err := NewSettingsUseCase(repo)
	require.NoError(t, err)

	critical, low := uc.Thresholds()
	assert.Equal(t, int64(5), critical)
	assert.Equal(t, int64(20), low)
	assert.Equal(t, "https://chat.test/hook", uc.WebhookURL())
}

func TestUpdate_AplicaSoloCamposPresentes(t *testing.T) {
	repo := testsupport.NewMemorySettingsRepo()
	uc, err := NewSettingsUseCase(repo)
	require.NoError(t, err)

	low := int64(25)
	updated, err := uc.Update(&low, nil, nil, "admin@test.local")
	require.NoError(t, err)
	assert.Equal(t, int64(25), updated.LowStockThreshold)
	assert.Equal(t, int64(DefaultCriticalThreshold), updated.CriticalThreshold, "critical no cambia")
	assert.Equal(t, "admin@test.local", updated.UpdatedBy)

	stored, _ := repo.Get()
	require.NotNil(t, stored)
	assert.Equal(t, int64(25), stored.LowStockThreshold)
}

func TestUpdate_RechazaUmbralesInvalidos(t *testing.T) {
	uc, err := NewSettingsUseCase(testsupport.NewMemorySettingsRepo())
	require.NoError(t, err)

	negative := int64(-1)
	_, err = uc.Update(&negative, nil, nil, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// critical > low es inconsistente.
	critical := int64(50)
	_, err = uc.Update(nil, &critical, nil, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// El rechazo no muta el estado vigente.
	c, low := uc.Thresholds()
	assert.Equal(t, int64(DefaultCriticalThreshold), c)
	assert.Equal(t, int64(DefaultLowThreshold), low)
}

func TestUpdate_WebhookSePuedeLimpiar(t *testing.T) {
	uc, err := NewSettingsUseCase(testsupport.NewMemorySettingsRepo())
	require.NoError(t, err)

	url := "https://chat.test/hook"
	_, err = uc.Update(nil, nil, &url, "admin")
	require.NoError(t, err)
	assert.Equal(t, url, uc.WebhookURL())

	empty := "  "
	_, err = uc.Update(nil, nil, &empty, "admin")
	require.NoError(t, err)
	assert.Empty(t, uc.WebhookURL())
}
