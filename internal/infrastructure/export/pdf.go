// Package export genera reportes descargables del inventario: PDF para
// impresión en planta y XLSX para análisis fuera de línea.
//
// Layout de la página A4 del reporte PDF:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR FAMILIA: Part | Nombre | Cantidad | Mínimo | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: sets armables por tipo                             │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mcalvo/bracket-tracker-api/internal/application/analyzer"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// PDFReport genera el reporte de stock en PDF usando Maroto v2.
type PDFReport struct{}

func NewPDFReport() *PDFReport { return &PDFReport{} }

// Generate arma el reporte: parts agrupados por familia y resumen de sets
// armables. criticalAt y defaultMin son los umbrales vigentes.
func (g *PDFReport) Generate(parts []*entity.Part, analyses []*analyzer.SetAnalysis, criticalAt, defaultMin int64) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	var family string
	for _, p := range parts {
		if p.Family != family {
			family = p.Family
			m.AddRows(familyHeaderRow(family))
			m.AddRows(tableHeaderRow())
		}
		m.AddRows(partRow(p, criticalAt, defaultMin))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryHeaderRow())
	for _, a := range analyses {
		m.AddRows(summaryRow(a))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario de Brackets", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func familyHeaderRow(family string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New("Familia "+family, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(6).Add(
		header("Part", 2),
		header("Nombre", 5),
		header("Cantidad", 2),
		header("Mínimo", 1),
		header("Estado", 2),
	)
}

func partRow(p *entity.Part, criticalAt, defaultMin int64) core.Row {
	state := p.StockState(criticalAt, defaultMin)
	stateColor := colorGray
	if state == entity.StockStateCritical {
		stateColor = colorRed
	}
	cell := func(s string, size int, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Color: color}))
	}
	return row.New(5).Add(
		cell(p.PartNumber, 2, nil),
		cell(p.Name, 5, nil),
		cell(fmt.Sprintf("%d", p.Quantity), 2, nil),
		cell(fmt.Sprintf("%d", p.MinStock), 1, nil),
		cell(state, 2, stateColor),
	)
}

func summaryHeaderRow() core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New("Sets armables con el stock actual", props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func summaryRow(a *analyzer.SetAnalysis) core.Row {
	return row.New(5).Add(
		col.New(3).Add(text.New("Set "+a.SetType, props.Text{Size: 8})),
		col.New(9).Add(text.New(fmt.Sprintf("%d set(s) completos", a.MaxBuildable), props.Text{Size: 8})),
	)
}
