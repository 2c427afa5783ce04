package models

import "time"

type Resena struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UsuarioID     uint         `json:"usuario" gorm:"not null;index"`
	Usuario       *Usuario     `json:"usuarioDetalle,omitempty" gorm:"foreignKey:UsuarioID"`
	RestauranteID uint         `json:"restaurante" gorm:"not null;index"`
	Restaurante   *Restaurante `json:"restauranteDetalle,omitempty" gorm:"foreignKey:RestauranteID"`
	Calificacion  int          `json:"calificacion" gorm:"not null;index"`
	Comentario    string       `json:"comentario"`
	CreatedAt     time.Time    `json:"fecha"`
	UpdatedAt     time.Time    `json:"fechaActualizacion"`
}
