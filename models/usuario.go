package models

import "time"

// TituloDireccion defines the allowed address labels
type TituloDireccion string

const (
	TituloCasa    TituloDireccion = "Casa"
	TituloTrabajo TituloDireccion = "Trabajo"
	TituloOtro    TituloDireccion = "Otro"
)

// TipoMetodoPago defines the allowed payment method kinds
type TipoMetodoPago string

const (
	TipoTarjeta  TipoMetodoPago = "Tarjeta"
	TipoPayPal   TipoMetodoPago = "PayPal"
	TipoEfectivo TipoMetodoPago = "Efectivo"
	TipoOtro     TipoMetodoPago = "Otro"
)

type Usuario struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Nombre           string        `json:"nombre" gorm:"not null"`
	Apellido         string        `json:"apellido" gorm:"not null"`
	Email            string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash     string        `json:"-"`
	Telefono         string        `json:"telefono"`
	Direcciones      []Direccion   `json:"direcciones,omitempty" gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	MetodosPago      []MetodoPago  `json:"metodosPago,omitempty" gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	DietasEspeciales []string      `json:"dietasEspeciales" gorm:"serializer:json"`
	Favoritos        []Restaurante `json:"restaurantesFavoritos,omitempty" gorm:"many2many:usuario_favoritos"`
	UltimoAcceso     time.Time     `json:"ultimoAcceso"`
	Activo           bool          `json:"activo" gorm:"default:true"`
	CreatedAt        time.Time     `json:"fechaRegistro"`
	UpdatedAt        time.Time     `json:"fechaActualizacion"`
}

type Direccion struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UsuarioID      uint            `json:"-" gorm:"not null;index"`
	Titulo         TituloDireccion `json:"titulo" gorm:"not null"`
	Calle          string          `json:"calle" gorm:"not null"`
	Ciudad         string          `json:"ciudad" gorm:"not null"`
	CodigoPostal   string          `json:"codigoPostal"`
	Lat            float64         `json:"lat"`
	Lng            float64         `json:"lng"`
	Predeterminada bool            `json:"predeterminada" gorm:"default:false"`
}

// MetodoPago never serialises its sensitive fields; ultimosDigitos and
// fechaExpiracion stay out of every response.
type MetodoPago struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UsuarioID       uint           `json:"-" gorm:"not null;index"`
	Tipo            TipoMetodoPago `json:"tipo" gorm:"not null"`
	UltimosDigitos  string         `json:"-"`
	FechaExpiracion string         `json:"-"`
	Predeterminado  bool           `json:"predeterminado" gorm:"default:false"`
}

// TituloValido reports whether t is one of the allowed address labels.
func TituloValido(t TituloDireccion) bool {
	switch t {
	case TituloCasa, TituloTrabajo, TituloOtro:
		return true
	}
	return false
}

// TipoMetodoPagoValido reports whether t is one of the allowed payment kinds.
func TipoMetodoPagoValido(t TipoMetodoPago) bool {
	switch t {
	case TipoTarjeta, TipoPayPal, TipoEfectivo, TipoOtro:
		return true
	}
	return false
}
