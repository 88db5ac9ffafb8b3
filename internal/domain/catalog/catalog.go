// Package catalog contiene el catálogo estático de componentes: familias en
// orden fijo de presentación, recetas de sets y los datos semilla del arranque.
// Todo es puro y sin estado; las cantidades viven en el Stock Ledger.
package catalog

import (
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// Families devuelve las familias de producto en el orden fijo de presentación.
func Families() []string {
	return []string{entity.FamilyH6, entity.FamilyH7, entity.FamilyH9}
}

// SetDef es la receta declarativa de un tipo de set: lista ordenada de
// componentes requeridos y, opcionalmente, un componente extra que se añade
// cuando la orden activa el modificador (espaciador auxiliar).
type SetDef struct {
	Type         string
	Parts        []string
	ModifierPart string // vacío = el tipo no declara modificador
}

// HasModifier indica si el tipo de set declara componente opcional.
func (d SetDef) HasModifier() bool { return d.ModifierPart != "" }

// setDefs en orden fijo de presentación (mismo orden que la UI de referencia).
var setDefs = []SetDef{
	{Type: "H6", Parts: []string{"H6-1", "H6-2", "H6-3"}, ModifierPart: "H6-4"},
	{Type: "H7-282", Parts: []string{"H7-282"}},
	{Type: "H7-304", Parts: []string{"H7-304"}},
	{Type: "H9", Parts: []string{"H9-1", "H9-2", "H9-3"}, ModifierPart: "H9-4"},
}

// partFamily mapea cada componente del catálogo a su familia.
var partFamily = map[string]string{
	"H6-1": entity.FamilyH6, "H6-2": entity.FamilyH6, "H6-3": entity.FamilyH6, "H6-4": entity.FamilyH6,
	"H7-282": entity.FamilyH7, "H7-304": entity.FamilyH7,
	"H9-1": entity.FamilyH9, "H9-2": entity.FamilyH9, "H9-3": entity.FamilyH9, "H9-4": entity.FamilyH9,
}

// SetTypes devuelve los tipos de set conocidos en orden de presentación.
func SetTypes() []string {
	types := make([]string, 0, len(setDefs))
	for _, d := range setDefs {
		types = append(types, d.Type)
	}
	return types
}

// Definition devuelve la receta completa de un tipo de set.
func Definition(setType string) (SetDef, error) {
	for _, d := range setDefs {
		if d.Type == setType {
			return d, nil
		}
	}
	return SetDef{}, domain.ErrUnknownSetType
}

// SetDefinition resuelve la lista ordenada de componentes requeridos por un set.
// El modificador añade exactamente un componente al final; el flag se ignora en
// tipos que no declaran modificador.
func SetDefinition(setType string, includeModifier bool) ([]string, error) {
	def, err := Definition(setType)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(def.Parts), len(def.Parts)+1)
	copy(parts, def.Parts)
	if includeModifier && def.HasModifier() {
		parts = append(parts, def.ModifierPart)
	}
	return parts, nil
}

// FamilyOf devuelve la familia de un componente. Solo se usa para agrupación
// visual; no porta invariantes.
func FamilyOf(partNumber string) (string, error) {
	fam, ok := partFamily[partNumber]
	if !ok {
		return "", domain.ErrUnknownPart
	}
	return fam, nil
}

// SeedParts devuelve el catálogo inicial con cantidades y mínimos de arranque.
func SeedParts() []entity.Part {
	return []entity.Part{
		{PartNumber: "H6-1", Name: "H6 Bracket 1", Family: entity.FamilyH6, Quantity: 15, MinStock: 10},
		{PartNumber: "H6-2", Name: "H6 Bracket 2", Family: entity.FamilyH6, Quantity: 12, MinStock: 10},
		{PartNumber: "H6-3", Name: "H6 Bracket 3", Family: entity.FamilyH6, Quantity: 8, MinStock: 5},
		{PartNumber: "H6-4", Name: "H6 Auxiliary Spacer", Family: entity.FamilyH6, Quantity: 10, MinStock: 5},
		{PartNumber: "H7-282", Name: "H7 Bracket 282", Family: entity.FamilyH7, Quantity: 5, MinStock: 5},
		{PartNumber: "H7-304", Name: "H7 Bracket 304", Family: entity.FamilyH7, Quantity: 5, MinStock: 5},
		{PartNumber: "H9-1", Name: "H9 Bracket 1", Family: entity.FamilyH9, Quantity: 20, MinStock: 8},
		{PartNumber: "H9-2", Name: "H9 Bracket 2", Family: entity.FamilyH9, Quantity: 18, MinStock: 8},
		{PartNumber: "H9-3", Name: "H9 Bracket 3", Family: entity.FamilyH9, Quantity: 6, MinStock: 5},
		{PartNumber: "H9-4", Name: "H9 Auxiliary Spacer", Family: entity.FamilyH9, Quantity: 12, MinStock: 5},
	}
}
