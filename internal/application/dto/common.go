package dto

// PageRequest paginación del catálogo (página 1-based).
type PageRequest struct {
	Page int `query:"page"`
}

// Normalize aplica la cota inferior de página 1.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
}

// PageResponse metadatos de página en respuestas. No hay total: el backend no lo expone.
type PageResponse struct {
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasPrev bool `json:"has_prev"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta genérica {message} del backend.
type MessageResponse struct {
	Message string `json:"message"`
}
