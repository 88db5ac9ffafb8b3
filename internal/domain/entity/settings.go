package entity

import "time"

// StockSettings es la configuración global de la aplicación: umbrales de
// clasificación visual (no bloquean operaciones) y endpoint de notificación.
// Se carga al arrancar, la actualiza un admin y se persiste para el siguiente
// reinicio. Fila única en BD.
type StockSettings struct {
	LowStockThreshold int64  // mínimo global usado cuando el part no define MinStock
	CriticalThreshold int64  // en o por debajo de este valor el part se muestra crítico
	WebhookURL        string // endpoint de chat para alertas; vacío = deshabilitado
	UpdatedAt         time.Time
	UpdatedBy         string
}
