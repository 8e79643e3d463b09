package dto

// ErrorResponse cuerpo de error HTTP. Available solo se incluye en errores de
// stock insuficiente e indica cuánto se podría reservar todavía.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int64 `json:"available,omitempty"`
}
