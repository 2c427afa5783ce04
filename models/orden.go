package models

import "time"

// EstadoOrden represents the lifecycle state of an order
type EstadoOrden string

const (
	EstadoPendiente  EstadoOrden = "pendiente"
	EstadoPreparando EstadoOrden = "preparando"
	EstadoEntregado  EstadoOrden = "entregado"
	EstadoCancelado  EstadoOrden = "cancelado"
)

type Orden struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UsuarioID     uint         `json:"usuario" gorm:"not null;index"`
	Usuario       *Usuario     `json:"usuarioDetalle,omitempty" gorm:"foreignKey:UsuarioID"`
	RestauranteID uint         `json:"restaurante" gorm:"not null;index"`
	Restaurante   *Restaurante `json:"restauranteDetalle,omitempty" gorm:"foreignKey:RestauranteID"`
	Items         []OrdenItem  `json:"items" gorm:"foreignKey:OrdenID;constraint:OnDelete:CASCADE"`
	Estado        EstadoOrden  `json:"estado" gorm:"not null;default:'pendiente';index"`
	Total         float64      `json:"total"`
	// Snapshots of the chosen delivery address and payment method at
	// checkout time; the order stays auditable if the user later edits them.
	DireccionEntrega string    `json:"direccionEntrega"`
	MetodoPago       string    `json:"metodoPago"`
	CreatedAt        time.Time `json:"fecha"`
	UpdatedAt        time.Time `json:"fechaActualizacion"`
}

type OrdenItem struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	OrdenID    uint          `json:"-" gorm:"not null;index"`
	ArticuloID uint          `json:"articulo" gorm:"not null"`
	Articulo   *ArticuloMenu `json:"articuloDetalle,omitempty" gorm:"foreignKey:ArticuloID"`
	Cantidad   int           `json:"cantidad" gorm:"not null"`
	Precio     float64       `json:"precio" gorm:"not null"` // unit price at order time
	Nombre     string        `json:"nombre"`                 // name at order time
}

// EstadoValido reports whether e is one of the four lifecycle states.
func EstadoValido(e EstadoOrden) bool {
	switch e {
	case EstadoPendiente, EstadoPreparando, EstadoEntregado, EstadoCancelado:
		return true
	}
	return false
}
