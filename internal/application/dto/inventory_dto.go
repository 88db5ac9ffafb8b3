package dto

import "time"

// AdjustRequest body para POST /api/parts/adjust.
type AdjustRequest struct {
	PartNumber string `json:"part_number"`
	Change     int64  `json:"change"`
	Station    string `json:"station"`
	Notes      string `json:"notes,omitempty"`
}

// PhysicalCountRequest body para POST /api/parts/count: fija la cantidad
// absoluta observada en conteo físico; el ledger registra la diferencia.
type PhysicalCountRequest struct {
	PartNumber     string `json:"part_number"`
	ActualQuantity int64  `json:"actual_quantity"`
}

// AdjustResponse respuesta de un ajuste aplicado.
type AdjustResponse struct {
	PartNumber  string `json:"part_number"`
	NewQuantity int64  `json:"new_quantity"`
}

// PartResponse representa un componente con su clasificación de stock.
type PartResponse struct {
	PartNumber string `json:"part_number"`
	Name       string `json:"name"`
	Family     string `json:"family"`
	Quantity   int64  `json:"quantity"`
	MinStock   int64  `json:"min_stock"`
	StockState string `json:"stock_state"`
}

// FamilyGroup agrupa los parts de una familia para presentación.
type FamilyGroup struct {
	Family string         `json:"family"`
	Parts  []PartResponse `json:"parts"`
}

// PartListResponse parts agrupados por familia en orden fijo.
type PartListResponse struct {
	Families []FamilyGroup `json:"families"`
}

// TransactionResponse una línea del historial de movimientos.
type TransactionResponse struct {
	ID         int64     `json:"id"`
	GroupID    string    `json:"group_id,omitempty"`
	PartNumber string    `json:"part_number"`
	Change     int64     `json:"change"`
	Station    string    `json:"station"`
	Notes      string    `json:"notes,omitempty"`
	Actor      string    `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
}

// HistoryResponse historial filtrado, más reciente primero.
type HistoryResponse struct {
	History []TransactionResponse `json:"history"`
}

// SetAnalysisComponent detalle por componente del análisis de sets.
type SetAnalysisComponent struct {
	PartNumber string `json:"part_number"`
	Available  int64  `json:"available"`
	Limiting   bool   `json:"limiting"`
}

// SetAnalysisEntry análisis de un tipo de set.
type SetAnalysisEntry struct {
	SetType    string                 `json:"set_type"`
	MaxSets    int64                  `json:"max_sets"`
	Components []SetAnalysisComponent `json:"components"`
}

// SetAnalysisResponse buildabilidad actual de todos los tipos de set.
type SetAnalysisResponse struct {
	Sets []SetAnalysisEntry `json:"sets"`
}
