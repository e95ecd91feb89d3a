package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeleteResult resultado de una eliminación.
// Todas las rutas de fallo (no encontrado, estado no eliminable, error remoto)
// terminan aquí; el servicio nunca propaga errores crudos al llamador.
type DeleteResult struct {
	Exito   bool     `json:"exito"`
	Errores []string `json:"errores,omitempty"`
}
