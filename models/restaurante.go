package models

import "time"

// DireccionLocal is the restaurant's physical address, embedded in the row.
type DireccionLocal struct {
	Calle        string  `json:"calle"`
	Ciudad       string  `json:"ciudad"`
	CodigoPostal string  `json:"codigoPostal"`
	Pais         string  `json:"pais"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type Restaurante struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	Nombre               string         `json:"nombre" gorm:"not null;index"`
	Descripcion          string         `json:"descripcion"`
	Telefono             string         `json:"telefono"`
	Email                string         `json:"email"`
	Direccion            DireccionLocal `json:"direccion" gorm:"embedded;embeddedPrefix:direccion_"`
	TiposCocina          []string       `json:"tiposCocina" gorm:"serializer:json"`
	CalificacionPromedio float64        `json:"calificacionPromedio" gorm:"default:0"`
	PrecioPromedio       float64        `json:"precioPromedio"`
	Imagenes             []string       `json:"imagenes" gorm:"serializer:json"`
	Activo               bool           `json:"activo" gorm:"default:true"`
	CreatedAt            time.Time      `json:"fechaCreacion"`
	UpdatedAt            time.Time      `json:"fechaActualizacion"`
}
