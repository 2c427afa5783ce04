package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articuloDePrueba(id, restauranteID uint, precio float64) *ArticuloMenu {
	return &ArticuloMenu{
		ID:            id,
		RestauranteID: restauranteID,
		Nombre:        "Artículo",
		Precio:        precio,
		Disponible:    true,
	}
}

func TestAgregarArticuloVinculaRestaurante(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}

	require.NoError(t, carrito.AgregarArticulo(articuloDePrueba(1, 7, 10), false))
	require.NotNil(t, carrito.RestauranteID)
	assert.Equal(t, uint(7), *carrito.RestauranteID)
	require.Len(t, carrito.Items, 1)
	assert.Equal(t, 1, carrito.Items[0].Cantidad)
}

func TestAgregarMismoArticuloIncrementaCantidad(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	articulo := articuloDePrueba(1, 7, 10)

	require.NoError(t, carrito.AgregarArticulo(articulo, false))
	require.NoError(t, carrito.AgregarArticulo(articulo, false))

	require.Len(t, carrito.Items, 1)
	assert.Equal(t, 2, carrito.Items[0].Cantidad)
	assert.Equal(t, 20.0, carrito.Subtotal())
}

func TestAgregarDeOtroRestauranteRequiereConfirmacion(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	require.NoError(t, carrito.AgregarArticulo(articuloDePrueba(1, 7, 10), false))

	otro := articuloDePrueba(2, 9, 5)
	err := carrito.AgregarArticulo(otro, false)
	assert.ErrorIs(t, err, ErrOtroRestaurante)
	require.Len(t, carrito.Items, 1, "el carrito no debe cambiar sin confirmación")

	// con confirmación el carrito se vacía y se vincula al nuevo restaurante
	require.NoError(t, carrito.AgregarArticulo(otro, true))
	require.Len(t, carrito.Items, 1)
	assert.Equal(t, uint(2), carrito.Items[0].ArticuloID)
	assert.Equal(t, uint(9), *carrito.RestauranteID)
}

func TestAgregarArticuloNoDisponible(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	articulo := articuloDePrueba(1, 7, 10)
	articulo.Disponible = false

	assert.Error(t, carrito.AgregarArticulo(articulo, false))
	assert.Empty(t, carrito.Items)
}

func TestQuitarArticuloDesvinculaAlVaciarse(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	require.NoError(t, carrito.AgregarArticulo(articuloDePrueba(1, 7, 10), false))
	require.NoError(t, carrito.AgregarArticulo(articuloDePrueba(2, 7, 5), false))

	carrito.QuitarArticulo(1)
	require.Len(t, carrito.Items, 1)
	require.NotNil(t, carrito.RestauranteID)

	carrito.QuitarArticulo(2)
	assert.Empty(t, carrito.Items)
	assert.Nil(t, carrito.RestauranteID)
}

func TestFijarCantidad(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	require.NoError(t, carrito.AgregarArticulo(articuloDePrueba(1, 7, 10), false))

	carrito.FijarCantidad(1, 5)
	assert.Equal(t, 5, carrito.Items[0].Cantidad)
	assert.Equal(t, 50.0, carrito.Subtotal())

	// cantidad cero equivale a quitar la línea
	carrito.FijarCantidad(1, 0)
	assert.Empty(t, carrito.Items)
	assert.Nil(t, carrito.RestauranteID)
}

func TestSubtotalTrasOperacionesArbitrarias(t *testing.T) {
	carrito := &Carrito{UsuarioID: 1}
	a := articuloDePrueba(1, 7, 10)
	b := articuloDePrueba(2, 7, 3.5)
	c := articuloDePrueba(3, 7, 8)

	require.NoError(t, carrito.AgregarArticulo(a, false))
	require.NoError(t, carrito.AgregarArticulo(b, false))
	require.NoError(t, carrito.AgregarArticulo(b, false))
	require.NoError(t, carrito.AgregarArticulo(c, false))
	carrito.FijarCantidad(3, 4)
	carrito.QuitarArticulo(1)

	// 2×3.5 + 4×8
	assert.InDelta(t, 39.0, carrito.Subtotal(), 1e-9)
}
