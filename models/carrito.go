package models

import (
	"errors"
	"time"

	"food-marketplace-api/apperrors"
)

// TarifaEnvio is the flat delivery fee added to every cart checkout.
const TarifaEnvio = 2.99

// ErrOtroRestaurante is returned when an article from a different restaurant
// is added to a non-empty cart without confirming the destructive replace.
var ErrOtroRestaurante = errors.New("el carrito pertenece a otro restaurante")

// Carrito is the server-side cart aggregate: one per user, bound to at most
// one restaurant at a time.
type Carrito struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	UsuarioID     uint          `json:"usuario" gorm:"uniqueIndex;not null"`
	RestauranteID *uint         `json:"restaurante"`
	Items         []CarritoItem `json:"items" gorm:"foreignKey:CarritoID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `json:"fechaCreacion"`
	UpdatedAt     time.Time     `json:"fechaActualizacion"`
}

type CarritoItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	CarritoID  uint    `json:"-" gorm:"not null;index"`
	ArticuloID uint    `json:"articulo" gorm:"not null"`
	Cantidad   int     `json:"cantidad" gorm:"not null"`
	Precio     float64 `json:"precio"` // unit price snapshot
	Nombre     string  `json:"nombre"`
}

// AgregarArticulo adds an available article to the cart. The first insertion
// binds the cart to the article's restaurant; adding the same article again
// increments its cantidad. Adding from a different restaurant fails with
// ErrOtroRestaurante unless reemplazar is set, in which case the cart is
// cleared and rebound first.
func (c *Carrito) AgregarArticulo(articulo *ArticuloMenu, reemplazar bool) error {
	if !articulo.Disponible {
		return apperrors.Validation("el artículo '%s' no está disponible", articulo.Nombre)
	}

	if c.RestauranteID != nil && *c.RestauranteID != articulo.RestauranteID {
		if !reemplazar {
			return ErrOtroRestaurante
		}
		c.Items = nil
		c.RestauranteID = nil
	}

	if c.RestauranteID == nil {
		rid := articulo.RestauranteID
		c.RestauranteID = &rid
	}

	for i := range c.Items {
		if c.Items[i].ArticuloID == articulo.ID {
			c.Items[i].Cantidad++
			return nil
		}
	}

	c.Items = append(c.Items, CarritoItem{
		CarritoID:  c.ID,
		ArticuloID: articulo.ID,
		Cantidad:   1,
		Precio:     articulo.Precio,
		Nombre:     articulo.Nombre,
	})
	return nil
}

// QuitarArticulo drops the line for articuloID. An empty cart loses its
// restaurant binding.
func (c *Carrito) QuitarArticulo(articuloID uint) {
	for i := range c.Items {
		if c.Items[i].ArticuloID == articuloID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	if len(c.Items) == 0 {
		c.RestauranteID = nil
	}
}

// FijarCantidad replaces the line's cantidad. A cantidad of zero or less is
// equivalent to QuitarArticulo.
func (c *Carrito) FijarCantidad(articuloID uint, cantidad int) {
	if cantidad <= 0 {
		c.QuitarArticulo(articuloID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ArticuloID == articuloID {
			c.Items[i].Cantidad = cantidad
			return
		}
	}
}

// Subtotal sums precio×cantidad over all lines. Pure, no side effects.
func (c *Carrito) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Precio * float64(item.Cantidad)
	}
	return total
}

// Vaciar clears all lines and the restaurant binding.
func (c *Carrito) Vaciar() {
	c.Items = nil
	c.RestauranteID = nil
}
