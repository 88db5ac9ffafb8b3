package dto

import "time"

// CreateWorkOrderRequest body para POST /api/work-orders.
type CreateWorkOrderRequest struct {
	OrderNumber     string `json:"order_number"`
	SetType         string `json:"set_type"`
	RequiredSets    int64  `json:"required_sets"`
	IncludeModifier bool   `json:"include_modifier,omitempty"`
}

// WorkOrderResponse representación de una orden de trabajo.
type WorkOrderResponse struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	SetType         string    `json:"set_type"`
	RequiredSets    int64     `json:"required_sets"`
	IncludeModifier bool      `json:"include_modifier"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by"`
}

// WorkOrderListResponse listado de órdenes.
type WorkOrderListResponse struct {
	Orders []WorkOrderResponse `json:"orders"`
}

// FulfillmentComponent estado de un componente frente a la orden.
type FulfillmentComponent struct {
	PartNumber string `json:"part_number"`
	Required   int64  `json:"required"`
	Available  int64  `json:"available"`
	Shortfall  int64  `json:"shortfall"`
}

// FulfillmentResponse estado de cumplimiento de una orden. Es una lectura
// consultiva: Complete revalida atómicamente en el momento de ejecutar.
type FulfillmentResponse struct {
	WorkOrderID string                 `json:"work_order_id"`
	Ready       bool                   `json:"ready"`
	Components  []FulfillmentComponent `json:"components"`
}
