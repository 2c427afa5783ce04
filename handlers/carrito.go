package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func cargarCarrito(db *gorm.DB, usuarioID uint) (*models.Carrito, error) {
	var carrito models.Carrito
	err := db.Preload("Items").Where("usuario_id = ?", usuarioID).First(&carrito).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		carrito = models.Carrito{UsuarioID: usuarioID}
		if err := db.Create(&carrito).Error; err != nil {
			return nil, err
		}
		return &carrito, nil
	}
	if err != nil {
		return nil, err
	}
	return &carrito, nil
}

// guardarCarrito rewrites the cart's lines and restaurant binding inside the
// caller's transaction.
func guardarCarrito(tx *gorm.DB, carrito *models.Carrito) error {
	if err := tx.Where("carrito_id = ?", carrito.ID).Delete(&models.CarritoItem{}).Error; err != nil {
		return err
	}
	for i := range carrito.Items {
		carrito.Items[i].ID = 0
		carrito.Items[i].CarritoID = carrito.ID
	}
	if len(carrito.Items) > 0 {
		if err := tx.Create(&carrito.Items).Error; err != nil {
			return err
		}
	}
	return tx.Model(&models.Carrito{}).Where("id = ?", carrito.ID).
		Update("restaurante_id", carrito.RestauranteID).Error
}

// GetCarrito returns the caller's cart, creating an empty one on first use.
func GetCarrito(c *gin.Context) {
	carrito, err := cargarCarrito(config.DB, middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"carrito":  carrito,
		"subtotal": carrito.Subtotal(),
	})
}

type AgregarItemRequest struct {
	Articulo   uint `json:"articulo" binding:"required"`
	Cantidad   int  `json:"cantidad"`
	Reemplazar bool `json:"reemplazar"`
}

// AgregarItemCarrito adds an article to the cart. Adding from a different
// restaurant answers 409 until the caller confirms the destructive replace
// with reemplazar=true.
func AgregarItemCarrito(c *gin.Context) {
	var req AgregarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var articulo models.ArticuloMenu
	if err := config.DB.First(&articulo, req.Articulo).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}

	carrito, err := cargarCarrito(config.DB, middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := carrito.AgregarArticulo(&articulo, req.Reemplazar); err != nil {
		if errors.Is(err, models.ErrOtroRestaurante) {
			c.JSON(http.StatusConflict, gin.H{
				"error":                err.Error(),
				"requiereConfirmacion": true,
			})
			return
		}
		respondError(c, err)
		return
	}
	if req.Cantidad > 1 {
		carrito.FijarCantidad(articulo.ID, req.Cantidad)
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return guardarCarrito(tx, carrito)
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carrito": carrito, "subtotal": carrito.Subtotal()})
}

type CantidadRequest struct {
	Cantidad int `json:"cantidad"`
}

// FijarCantidadCarrito replaces a line's quantity; zero or less removes it.
func FijarCantidadCarrito(c *gin.Context) {
	var req CantidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	carrito, err := cargarCarrito(config.DB, middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	carrito.FijarCantidad(paramUint(c, "articuloId"), req.Cantidad)

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return guardarCarrito(tx, carrito)
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carrito": carrito, "subtotal": carrito.Subtotal()})
}

// QuitarItemCarrito drops a line from the cart.
func QuitarItemCarrito(c *gin.Context) {
	carrito, err := cargarCarrito(config.DB, middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	carrito.QuitarArticulo(paramUint(c, "articuloId"))

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return guardarCarrito(tx, carrito)
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"carrito": carrito, "subtotal": carrito.Subtotal()})
}

// VaciarCarrito clears the cart entirely.
func VaciarCarrito(c *gin.Context) {
	carrito, err := cargarCarrito(config.DB, middleware.GetUsuarioID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	carrito.Vaciar()
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return guardarCarrito(tx, carrito)
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Carrito vaciado"})
}

type ConfirmarCarritoRequest struct {
	DireccionID  uint `json:"direccionId"`
	MetodoPagoID uint `json:"metodoPagoId"`
}

// ConfirmarCarrito materialises the cart into a pending order: resolves the
// delivery address and payment method (explicit choice first, stored default
// otherwise), applies the delivery fee and clears the cart. Order creation
// and cart clearing happen in one transaction; on any validation failure the
// cart is left untouched and nothing is persisted.
func ConfirmarCarrito(c *gin.Context) {
	var req ConfirmarCarritoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usuarioID := middleware.GetUsuarioID(c)
	carrito, err := cargarCarrito(config.DB, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(carrito.Items) == 0 || carrito.RestauranteID == nil {
		respondError(c, apperrors.Validation("el carrito está vacío"))
		return
	}

	var usuario models.Usuario
	if err := config.DB.
		Preload("Direcciones").
		Preload("MetodosPago").
		First(&usuario, usuarioID).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}

	direccion, err := elegirDireccion(usuario.Direcciones, req.DireccionID)
	if err != nil {
		respondError(c, err)
		return
	}
	metodo, err := elegirMetodoPago(usuario.MetodosPago, req.MetodoPagoID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]models.OrdenItem, len(carrito.Items))
	for i, linea := range carrito.Items {
		items[i] = models.OrdenItem{
			ArticuloID: linea.ArticuloID,
			Cantidad:   linea.Cantidad,
			Precio:     linea.Precio,
			Nombre:     linea.Nombre,
		}
	}

	orden := models.Orden{
		UsuarioID:        usuarioID,
		RestauranteID:    *carrito.RestauranteID,
		Items:            items,
		Estado:           models.EstadoPendiente,
		Total:            carrito.Subtotal() + models.TarifaEnvio,
		DireccionEntrega: fmt.Sprintf("%s, %s", direccion.Calle, direccion.Ciudad),
		MetodoPago:       string(metodo.Tipo),
	}

	// The clear is conditional on the lines read above: a double-submitted
	// checkout finds its rows already gone, deletes nothing and rolls back
	// without creating a second order.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		resultado := tx.Where("carrito_id = ?", carrito.ID).Delete(&models.CarritoItem{})
		if resultado.Error != nil {
			return resultado.Error
		}
		if resultado.RowsAffected != int64(len(carrito.Items)) {
			return apperrors.Validation("el carrito ya fue confirmado")
		}
		if err := tx.Model(&models.Carrito{}).Where("id = ?", carrito.ID).
			Update("restaurante_id", nil).Error; err != nil {
			return err
		}
		return tx.Create(&orden).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Orden creada correctamente",
		"orden":   orden,
	})
}

func elegirDireccion(direcciones []models.Direccion, id uint) (*models.Direccion, error) {
	if id != 0 {
		for i := range direcciones {
			if direcciones[i].ID == id {
				return &direcciones[i], nil
			}
		}
		return nil, apperrors.NotFound("Dirección")
	}
	for i := range direcciones {
		if direcciones[i].Predeterminada {
			return &direcciones[i], nil
		}
	}
	return nil, apperrors.Validation("no hay dirección de entrega seleccionada")
}

func elegirMetodoPago(metodos []models.MetodoPago, id uint) (*models.MetodoPago, error) {
	if id != 0 {
		for i := range metodos {
			if metodos[i].ID == id {
				return &metodos[i], nil
			}
		}
		return nil, apperrors.NotFound("Método de pago")
	}
	for i := range metodos {
		if metodos[i].Predeterminado {
			return &metodos[i], nil
		}
	}
	return nil, apperrors.Validation("no hay método de pago seleccionado")
}
