// Package analyzer implementa el Set Analyzer: lecturas consultivas de cuántos
// sets completos se pueden armar con el stock confirmado actual.
package analyzer

import (
	"fmt"

	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/catalog"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/repository"
)

// Component es el detalle de un componente dentro del análisis de un set.
type Component struct {
	PartNumber string
	Available  int64
	Limiting   bool
}

// SetAnalysis es el resultado para un tipo de set.
type SetAnalysis struct {
	SetType      string
	MaxBuildable int64
	Components   []Component
}

// SetAnalyzerUseCase calcula el máximo de sets armables por tipo. Trabaja
// siempre sobre la receta base, sin modificador: el modificador es opción por
// orden, no parte de la definición del set.
type SetAnalyzerUseCase struct {
	partRepo repository.PartRepository
}

func NewSetAnalyzerUseCase(partRepo repository.PartRepository) *SetAnalyzerUseCase {
	return &SetAnalyzerUseCase{partRepo: partRepo}
}

// MaxBuildable devuelve el mínimo de las cantidades de la receta base del set.
// Receta vacía devuelve 0. Falla con ErrUnknownSetType si el tipo no existe.
func (uc *SetAnalyzerUseCase) MaxBuildable(setType string) (int64, error) {
	analysis, err := uc.Analyze(setType)
	if err != nil {
		return 0, err
	}
	return analysis.MaxBuildable, nil
}

// Analyze devuelve el máximo armable y el detalle por componente, marcando los
// componentes limitantes (los de cantidad mínima).
func (uc *SetAnalyzerUseCase) Analyze(setType string) (*SetAnalysis, error) {
	recipe, err := catalog.SetDefinition(setType, false)
	if err != nil {
		return nil, err
	}
	analysis := &SetAnalysis{SetType: setType}
	if len(recipe) == 0 {
		return analysis, nil
	}
	min := int64(-1)
	for _, pn := range recipe {
		part, err := uc.partRepo.GetByNumber(pn)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPart, pn)
		}
		analysis.Components = append(analysis.Components, Component{
			PartNumber: pn,
			Available:  part.Quantity,
		})
		if min < 0 || part.Quantity < min {
			min = part.Quantity
		}
	}
	analysis.MaxBuildable = min
	for i := range analysis.Components {
		analysis.Components[i].Limiting = analysis.Components[i].Available == min
	}
	return analysis, nil
}

// AnalyzeAll devuelve el análisis de todos los tipos de set del catálogo, en el
// orden fijo de presentación.
func (uc *SetAnalyzerUseCase) AnalyzeAll() ([]*SetAnalysis, error) {
	types := catalog.SetTypes()
	out := make([]*SetAnalysis, 0, len(types))
	for _, st := range types {
		analysis, err := uc.Analyze(st)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, nil
}
