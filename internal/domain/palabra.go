package domain

import "time"

// Palabra representa una entrada del catálogo de vocabulario.
type Palabra struct {
	ID          int64     `json:"id"`
	Palabra     string    `json:"palabra"`
	Nombre      string    `json:"nombre"`
	CodigoISO   string    `json:"codigo_iso"`
	Region      string    `json:"region,omitempty"`
	Descripcion string    `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
