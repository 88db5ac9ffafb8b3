package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// ExcelReport genera el export XLSX del inventario: una hoja de stock y una
// hoja con las transacciones recientes.
type ExcelReport struct{}

func NewExcelReport() *ExcelReport { return &ExcelReport{} }

// Generate arma el libro y devuelve sus bytes.
func (g *ExcelReport) Generate(parts []*entity.Part, transactions []*entity.Transaction, criticalAt, defaultMin int64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const stockSheet = "Stock"
	f.SetSheetName("Sheet1", stockSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: crear estilo: %w", err)
	}

	if err := writeStockSheet(f, stockSheet, headerStyle, parts, criticalAt, defaultMin); err != nil {
		return nil, err
	}

	const txSheet = "Transacciones"
	if _, err := f.NewSheet(txSheet); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	if err := writeTransactionsSheet(f, txSheet, headerStyle, transactions); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStockSheet(f *excelize.File, sheet string, headerStyle int, parts []*entity.Part, criticalAt, defaultMin int64) error {
	headers := []string{"Part", "Nombre", "Familia", "Cantidad", "Mínimo", "Estado"}
	if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}
	for i, p := range parts {
		values := []any{
			p.PartNumber, p.Name, p.Family, p.Quantity, p.MinStock,
			p.StockState(criticalAt, defaultMin),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, sheet string, headerStyle int, transactions []*entity.Transaction) error {
	headers := []string{"ID", "Part", "Cambio", "Estación", "Notas", "Actor", "Fecha"}
	if err := writeRow(f, sheet, 1, toAny(headers)); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}
	for i, t := range transactions {
		values := []any{
			t.ID, t.PartNumber, t.Change, t.Station, t.Notes, t.Actor,
			t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("excel: escribir celda: %w", err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, style, cols int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("excel: celda: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("excel: aplicar estilo: %w", err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
