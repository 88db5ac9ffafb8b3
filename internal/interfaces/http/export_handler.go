package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mcalvo/bracket-tracker-api/internal/application/analyzer"
	"github.com/mcalvo/bracket-tracker-api/internal/application/dto"
	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/infrastructure/export"
)

// ExportHandler genera descargas del inventario: JSON, XLSX y PDF.
type ExportHandler struct {
	ledgerUC   *ledger.StockLedgerUseCase
	analyzerUC *analyzer.SetAnalyzerUseCase
	settingsUC *settings.SettingsUseCase
	excel      *export.ExcelReport
	pdf        *export.PDFReport
}

// NewExportHandler construye el handler de exports.
func NewExportHandler(
	ledgerUC *ledger.StockLedgerUseCase,
	analyzerUC *analyzer.SetAnalyzerUseCase,
	settingsUC *settings.SettingsUseCase,
	excel *export.ExcelReport,
	pdf *export.PDFReport,
) *ExportHandler {
	return &ExportHandler{
		ledgerUC:   ledgerUC,
		analyzerUC: analyzerUC,
		settingsUC: settingsUC,
		excel:      excel,
		pdf:        pdf,
	}
}

// JSON godoc
// @Summary      Export del inventario en JSON
// @Tags         export
// @Produce      json
// @Success      200  {object}  dto.PartListResponse
// @Router       /api/export/inventory [get]
func (h *ExportHandler) JSON(c *fiber.Ctx) error {
	parts, err := h.ledgerUC.ListParts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	critical, low := h.settingsUC.Thresholds()
	out := dto.PartListResponse{}
	var group *dto.FamilyGroup
	for _, p := range parts {
		if group == nil || group.Family != p.Family {
			out.Families = append(out.Families, dto.FamilyGroup{Family: p.Family})
			group = &out.Families[len(out.Families)-1]
		}
		group.Parts = append(group.Parts, dto.PartResponse{
			PartNumber: p.PartNumber,
			Name:       p.Name,
			Family:     p.Family,
			Quantity:   p.Quantity,
			MinStock:   p.MinStock,
			StockState: p.StockState(critical, low),
		})
	}
	c.Set(fiber.HeaderContentDisposition, attachment("json"))
	return c.JSON(out)
}

// Excel godoc
// @Summary      Export del inventario en XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/export/snapshot.xlsx [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	parts, err := h.ledgerUC.ListParts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	transactions, err := h.ledgerUC.History("", 500)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	critical, low := h.settingsUC.Thresholds()
	data, err := h.excel.Generate(parts, transactions, critical, low)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment("xlsx"))
	return c.Send(data)
}

// PDF godoc
// @Summary      Reporte del inventario en PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/export/report.pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	parts, err := h.ledgerUC.ListParts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	analyses, err := h.analyzerUC.AnalyzeAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	critical, low := h.settingsUC.Thresholds()
	data, err := h.pdf.Generate(parts, analyses, critical, low)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("pdf"))
	return c.Send(data)
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="inventario_%s.%s"`, time.Now().Format("20060102_150405"), ext)
}
