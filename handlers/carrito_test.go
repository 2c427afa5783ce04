package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type carritoResponse struct {
	Carrito  models.Carrito `json:"carrito"`
	Subtotal float64        `json:"subtotal"`
}

func TestGetCarritoCreaUnoVacio(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")

	w := doJSON(r, http.MethodGet, "/api/carrito", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp carritoResponse
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Carrito.Items)
	assert.Zero(t, resp.Subtotal)
}

func TestAgregarItemsYSubtotal(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)
	bebida := seedArticulo(t, restaurante.ID, "Vino de la casa", 8)

	w := doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID, "cantidad": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": bebida.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp carritoResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Carrito.Items, 2)
	assert.InDelta(t, 52.0, resp.Subtotal, 1e-9)

	// repetir un artículo incrementa la línea existente
	w = doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": bebida.ID})
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Carrito.Items, 2)
	assert.InDelta(t, 60.0, resp.Subtotal, 1e-9)
}

func TestAgregarDeOtroRestauranteDevuelve409(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")
	asador := seedRestaurante(t, "El Asador")
	trattoria := seedRestaurante(t, "La Trattoria")
	cochinillo := seedArticulo(t, asador.ID, "Cochinillo", 22)
	carbonara := seedArticulo(t, trattoria.ID, "Carbonara", 12)

	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": cochinillo.ID})

	w := doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": carbonara.ID})
	require.Equal(t, http.StatusConflict, w.Code)

	var conflicto struct {
		RequiereConfirmacion bool `json:"requiereConfirmacion"`
	}
	decodeJSON(t, w, &conflicto)
	assert.True(t, conflicto.RequiereConfirmacion)

	// sin confirmar, el carrito conserva el contenido original
	var items int64
	require.NoError(t, config.DB.Model(&models.CarritoItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, items)

	// con reemplazar=true se vacía y cambia de restaurante
	w = doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": carbonara.ID, "reemplazar": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp carritoResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp.Carrito.Items, 1)
	assert.Equal(t, carbonara.ID, resp.Carrito.Items[0].ArticuloID)
	require.NotNil(t, resp.Carrito.RestauranteID)
	assert.Equal(t, trattoria.ID, *resp.Carrito.RestauranteID)
}

func TestFijarYQuitarItems(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID})

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", plato.ID), gin.H{"cantidad": 4})
	require.Equal(t, http.StatusOK, w.Code)

	var resp carritoResponse
	decodeJSON(t, w, &resp)
	assert.InDelta(t, 88.0, resp.Subtotal, 1e-9)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/carrito/items/%d", plato.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &resp)
	assert.Empty(t, resp.Carrito.Items)
	assert.Nil(t, resp.Carrito.RestauranteID)
}

func TestConfirmarCarritoVacio(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")

	w := doJSON(r, http.MethodPost, "/api/carrito/confirmar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmarSinDireccionNoDejaRastro(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID})

	w := doJSON(r, http.MethodPost, "/api/carrito/confirmar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// ni orden creada ni carrito tocado
	var ordenes int64
	require.NoError(t, config.DB.Model(&models.Orden{}).Count(&ordenes).Error)
	assert.Zero(t, ordenes)

	var items int64
	require.NoError(t, config.DB.Model(&models.CarritoItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, items)
}

func TestConfirmarConPredeterminados(t *testing.T) {
	r := setupTest(t, 1)
	usuario := seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	require.NoError(t, models.AgregarDireccion(config.DB, usuario.ID, &models.Direccion{
		Titulo: models.TituloCasa, Calle: "Gran Vía 10", Ciudad: "Madrid", Predeterminada: true,
	}))
	require.NoError(t, models.AgregarMetodoPago(config.DB, usuario.ID, &models.MetodoPago{
		Tipo: models.TipoTarjeta, UltimosDigitos: "4242", Predeterminado: true,
	}))

	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID, "cantidad": 2})

	w := doJSON(r, http.MethodPost, "/api/carrito/confirmar", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Orden models.Orden `json:"orden"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, models.EstadoPendiente, resp.Orden.Estado)
	assert.InDelta(t, 44.0+models.TarifaEnvio, resp.Orden.Total, 1e-9)
	assert.Equal(t, "Gran Vía 10, Madrid", resp.Orden.DireccionEntrega)
	assert.Equal(t, "Tarjeta", resp.Orden.MetodoPago)
	require.Len(t, resp.Orden.Items, 1)
	assert.Equal(t, 2, resp.Orden.Items[0].Cantidad)
	assert.Equal(t, 22.0, resp.Orden.Items[0].Precio)

	// el carrito queda vacío tras el checkout
	wc := doJSON(r, http.MethodGet, "/api/carrito", nil)
	var carrito carritoResponse
	decodeJSON(t, wc, &carrito)
	assert.Empty(t, carrito.Carrito.Items)
	assert.Nil(t, carrito.Carrito.RestauranteID)

	// reenviar la confirmación no crea una segunda orden
	w = doJSON(r, http.MethodPost, "/api/carrito/confirmar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var ordenes int64
	require.NoError(t, config.DB.Model(&models.Orden{}).Count(&ordenes).Error)
	assert.EqualValues(t, 1, ordenes)
}

func TestConfirmacionesConcurrentesCreanUnaSolaOrden(t *testing.T) {
	r := setupTest(t, 1)
	usuario := seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	require.NoError(t, models.AgregarDireccion(config.DB, usuario.ID, &models.Direccion{
		Titulo: models.TituloCasa, Calle: "Gran Vía 10", Ciudad: "Madrid", Predeterminada: true,
	}))
	require.NoError(t, models.AgregarMetodoPago(config.DB, usuario.ID, &models.MetodoPago{
		Tipo: models.TipoEfectivo, Predeterminado: true,
	}))
	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID})

	codigos := make([]int, 2)
	var wg sync.WaitGroup
	for i := range codigos {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codigos[i] = doJSON(r, http.MethodPost, "/api/carrito/confirmar", nil).Code
		}(i)
	}
	wg.Wait()

	creadas := 0
	for _, codigo := range codigos {
		switch codigo {
		case http.StatusCreated:
			creadas++
		case http.StatusBadRequest:
		default:
			t.Fatalf("código inesperado %d", codigo)
		}
	}
	assert.Equal(t, 1, creadas, "un carrito solo puede confirmarse una vez")

	var ordenes int64
	require.NoError(t, config.DB.Model(&models.Orden{}).Count(&ordenes).Error)
	assert.EqualValues(t, 1, ordenes)

	var items int64
	require.NoError(t, config.DB.Model(&models.CarritoItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestConfirmarConDireccionExplicitaInexistente(t *testing.T) {
	r := setupTest(t, 1)
	usuario := seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	require.NoError(t, models.AgregarMetodoPago(config.DB, usuario.ID, &models.MetodoPago{
		Tipo: models.TipoEfectivo, Predeterminado: true,
	}))
	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID})

	w := doJSON(r, http.MethodPost, "/api/carrito/confirmar", gin.H{"direccionId": 77})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVaciarCarrito(t *testing.T) {
	r := setupTest(t, 1)
	seedUsuario(t, "carrito@example.com")
	restaurante := seedRestaurante(t, "El Asador")
	plato := seedArticulo(t, restaurante.ID, "Cochinillo", 22)

	doJSON(r, http.MethodPost, "/api/carrito/items", gin.H{"articulo": plato.ID})

	w := doJSON(r, http.MethodDelete, "/api/carrito", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items int64
	require.NoError(t, config.DB.Model(&models.CarritoItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
