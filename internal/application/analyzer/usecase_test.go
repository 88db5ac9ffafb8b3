package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
	"github.com/mcalvo/bracket-tracker-api/internal/testsupport"
)

func newAnalyzer(parts ...entity.Part) *SetAnalyzerUseCase {
	return NewSetAnalyzerUseCase(testsupport.NewMemoryPartRepo(parts...))
}

func TestMaxBuildable_EsElMinimoDeLaReceta(t *testing.T) {
	uc := newAnalyzer(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		entity.Part{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 12},
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
	)

	max, err := uc.MaxBuildable("H6")
	require.NoError(t, err)
	assert.Equal(t, int64(8), max)
}

func TestMaxBuildable_IgnoraElModificador(t *testing.T) {
	// H6-4 es el modificador de H6: su cantidad (2) no limita el cálculo.
	uc := newAnalyzer(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		entity.Part{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 12},
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
		entity.Part{PartNumber: "H6-4", Family: entity.FamilyH6, Quantity: 2},
	)

	max, err := uc.MaxBuildable("H6")
	require.NoError(t, err)
	assert.Equal(t, int64(8), max)
}

func TestMaxBuildable_ComponenteEnCeroDaCero(t *testing.T) {
	uc := newAnalyzer(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		entity.Part{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 0},
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
	)

	max, err := uc.MaxBuildable("H6")
	require.NoError(t, err)
	assert.Zero(t, max)
}

func TestMaxBuildable_TipoDesconocido(t *testing.T) {
	uc := newAnalyzer()

	_, err := uc.MaxBuildable("H8")
	assert.ErrorIs(t, err, domain.ErrUnknownSetType)
}

func TestAnalyze_MarcaComponentesLimitantes(t *testing.T) {
	uc := newAnalyzer(
		entity.Part{PartNumber: "H9-1", Family: entity.FamilyH9, Quantity: 20},
		entity.Part{PartNumber: "H9-2", Family: entity.FamilyH9, Quantity: 6},
		entity.Part{PartNumber: "H9-3", Family: entity.FamilyH9, Quantity: 6},
	)

	analysis, err := uc.Analyze("H9")
	require.NoError(t, err)
	assert.Equal(t, int64(6), analysis.MaxBuildable)
	require.Len(t, analysis.Components, 3)

	limiting := make(map[string]bool)
	for _, c := range analysis.Components {
		limiting[c.PartNumber] = c.Limiting
	}
	assert.False(t, limiting["H9-1"])
	assert.True(t, limiting["H9-2"])
	assert.True(t, limiting["H9-3"])
}

func TestAnalyze_SetDeUnComponente(t *testing.T) {
	uc := newAnalyzer(
		entity.Part{PartNumber: "H7-304", Family: entity.FamilyH7, Quantity: 5},
	)

	analysis, err := uc.Analyze("H7-304")
	require.NoError(t, err)
	assert.Equal(t, int64(5), analysis.MaxBuildable)
	require.Len(t, analysis.Components, 1)
	assert.True(t, analysis.Components[0].Limiting)
}

func TestAnalyzeAll_CubreTodoElCatalogo(t *testing.T) {
	uc := newAnalyzer(
		entity.Part{PartNumber: "H6-1", Family: entity.FamilyH6, Quantity: 15},
		entity.Part{PartNumber: "H6-2", Family: entity.FamilyH6, Quantity: 12},
		entity.Part{PartNumber: "H6-3", Family: entity.FamilyH6, Quantity: 8},
		entity.Part{PartNumber: "H6-4", Family: entity.FamilyH6, Quantity: 10},
		entity.Part{PartNumber: "H7-282", Family: entity.FamilyH7, Quantity: 5},
		entity.Part{PartNumber: "H7-304", Family: entity.FamilyH7, Quantity: 5},
		entity.Part{PartNumber: "H9-1", Family: entity.FamilyH9, Quantity: 20},
		entity.Part{PartNumber: "H9-2", Family: entity.FamilyH9, Quantity: 18},
		entity.Part{PartNumber: "H9-3", Family: entity.FamilyH9, Quantity: 6},
		entity.Part{PartNumber: "H9-4", Family: entity.FamilyH9, Quantity: 12},
	)

	all, err := uc.AnalyzeAll()
	require.NoError(t, err)
	require.Len(t, all, 4)

	byType := make(map[string]int64)
	for _, a := range all {
		byType[a.SetType] = a.MaxBuildable
	}
	assert.Equal(t, int64(8), byType["H6"])
	assert.Equal(t, int64(5), byType["H7-282"])
	assert.Equal(t, int64(5), byType["H7-304"])
	assert.Equal(t, int64(6), byType["H9"])
}
