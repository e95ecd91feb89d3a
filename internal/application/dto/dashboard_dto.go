package dto

// DashboardResumenResponse resumen del tablero: facturas pendientes/vencidas
// más el conteo de órdenes pendientes de envío.
type DashboardResumenResponse struct {
	Facturas          InvoiceSummaryResponse `json:"facturas"`
	OrdenesPendientes int                    `json:"ordenes_pendientes"`
}

// UploadResponse resultado de subir un documento al bucket.
type UploadResponse struct {
	Ruta string `json:"ruta"`
	URL  string `json:"url"`
}
