package dto

// PageRequest paginación para listados (basada en página + tamaño).
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// Normalize aplica valores por defecto y acota el tamaño a 1..100.
func (p *PageRequest) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// Offset devuelve el desplazamiento absoluto de la página.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
