package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
)

// La receta base de H6 son sus tres brackets, en orden.
func TestSetDefinition_RecetaBase(t *testing.T) {
	parts, err := catalog.SetDefinition("H6", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"H6-1", "H6-2", "H6-3"}, parts)
}

// El modificador añade exactamente un componente al final de la receta.
func TestSetDefinition_ModificadorAgregaUnComponente(t *testing.T) {
	parts, err := catalog.SetDefinition("H6", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"H6-1", "H6-2", "H6-3", "H6-4"}, parts)
}

// El flag de modificador se ignora en tipos que no lo declaran.
func TestSetDefinition_ModificadorIgnoradoSinDeclaracion(t *testing.T) {
	withFlag, err := catalog.SetDefinition("H7-282", true)
	require.NoError(t, err)
	withoutFlag, err := catalog.SetDefinition("H7-282", false)
	require.NoError(t, err)
	assert.Equal(t, withoutFlag, withFlag)
	assert.Equal(t, []string{"H7-282"}, withFlag)
}

func TestSetDefinition_TipoDesconocido(t *testing.T) {
	_, err := catalog.SetDefinition("H12", false)
	assert.ErrorIs(t, err, domain.ErrUnknownSetType)
}

// Mutar el slice devuelto no debe alterar la receta estática.
func TestSetDefinition_DevuelveCopia(t *testing.T) {
	parts, err := catalog.SetDefinition("H9", false)
	require.NoError(t, err)
	parts[0] = "mutado"

	again, err := catalog.SetDefinition("H9", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"H9-1", "H9-2", "H9-3"}, again)
}

func TestFamilyOf(t *testing.T) {
	fam, err := catalog.FamilyOf("H7-304")
	require.NoError(t, err)
	assert.Equal(t, "H7", fam)

	_, err = catalog.FamilyOf("X-1")
	assert.ErrorIs(t, err, domain.ErrUnknownPart)
}

// El orden de familias es fijo y cada part semilla pertenece a una familia conocida.
func TestSeedParts_ConsistenteConFamilias(t *testing.T) {
	assert.Equal(t, []string{"H6", "H7", "H9"}, catalog.Families())

	for _, p := range catalog.SeedParts() {
		fam, err := catalog.FamilyOf(p.PartNumber)
		require.NoError(t, err, p.PartNumber)
		assert.Equal(t, p.Family, fam, p.PartNumber)
		assert.GreaterOrEqual(t, p.Quantity, int64(0))
	}
}

// Toda receta (incluido el modificador) referencia solo parts del catálogo semilla.
func TestSetTypes_RecetasResuelvenAPartsDelCatalogo(t *testing.T) {
	known := map[string]bool{}
	for _, p := range catalog.SeedParts() {
		known[p.PartNumber] = true
	}
	for _, st := range catalog.SetTypes() {
		parts, err := catalog.SetDefinition(st, true)
		require.NoError(t, err)
		require.NotEmpty(t, parts, st)
		for _, pn := range parts {
			assert.True(t, known[pn], "receta %s referencia part desconocido %s", st, pn)
		}
	}
}
