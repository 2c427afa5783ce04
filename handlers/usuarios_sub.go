package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

type DireccionRequest struct {
	Titulo         models.TituloDireccion `json:"titulo" binding:"required"`
	Calle          string                 `json:"calle" binding:"required"`
	Ciudad         string                 `json:"ciudad" binding:"required"`
	CodigoPostal   string                 `json:"codigoPostal"`
	Lat            float64                `json:"lat"`
	Lng            float64                `json:"lng"`
	Predeterminada bool                   `json:"predeterminada"`
}

// AgregarDireccion appends an address to the user, keeping at most one
// default.
func AgregarDireccion(c *gin.Context) {
	var req DireccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dir := models.Direccion{
		Titulo:         req.Titulo,
		Calle:          req.Calle,
		Ciudad:         req.Ciudad,
		CodigoPostal:   req.CodigoPostal,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Predeterminada: req.Predeterminada,
	}
	if err := models.AgregarDireccion(config.DB, paramUint(c, "id"), &dir); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dir)
}

// ActualizarDireccion applies a whitelisted patch to one address.
func ActualizarDireccion(c *gin.Context) {
	var patch models.DireccionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dir, err := models.ActualizarDireccion(config.DB, paramUint(c, "id"), paramUint(c, "direccionId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dir)
}

// EliminarDireccion removes one address, promoting a new default if needed.
func EliminarDireccion(c *gin.Context) {
	if err := models.EliminarDireccion(config.DB, paramUint(c, "id"), paramUint(c, "direccionId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Dirección eliminada correctamente"})
}

type MetodoPagoRequest struct {
	Tipo            models.TipoMetodoPago `json:"tipo" binding:"required"`
	UltimosDigitos  string                `json:"ultimosDigitos"`
	FechaExpiracion string                `json:"fechaExpiracion"`
	Predeterminado  bool                  `json:"predeterminado"`
}

// AgregarMetodoPago appends a payment method, keeping at most one default.
func AgregarMetodoPago(c *gin.Context) {
	var req MetodoPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mp := models.MetodoPago{
		Tipo:            req.Tipo,
		UltimosDigitos:  req.UltimosDigitos,
		FechaExpiracion: req.FechaExpiracion,
		Predeterminado:  req.Predeterminado,
	}
	if err := models.AgregarMetodoPago(config.DB, paramUint(c, "id"), &mp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mp)
}

// ActualizarMetodoPago applies a whitelisted patch to one payment method.
func ActualizarMetodoPago(c *gin.Context) {
	var patch models.MetodoPagoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mp, err := models.ActualizarMetodoPago(config.DB, paramUint(c, "id"), paramUint(c, "metodoPagoId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mp)
}

// EliminarMetodoPago removes one payment method, promoting a new default if
// needed.
func EliminarMetodoPago(c *gin.Context) {
	if err := models.EliminarMetodoPago(config.DB, paramUint(c, "id"), paramUint(c, "metodoPagoId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Método de pago eliminado correctamente"})
}

type FavoritoRequest struct {
	RestauranteID uint `json:"restauranteId" binding:"required"`
}

// AgregarFavorito adds a restaurant to the user's favoritos and returns the
// updated list.
func AgregarFavorito(c *gin.Context) {
	var req FavoritoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usuarioID := paramUint(c, "id")
	if err := models.AgregarFavorito(config.DB, usuarioID, req.RestauranteID); err != nil {
		respondError(c, err)
		return
	}

	favoritos, err := models.Favoritos(config.DB, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoritos)
}

// EliminarFavorito removes a restaurant from favoritos; removing an absent
// one is a no-op.
func EliminarFavorito(c *gin.Context) {
	usuarioID := paramUint(c, "id")
	if err := models.EliminarFavorito(config.DB, usuarioID, paramUint(c, "restauranteId")); err != nil {
		respondError(c, err)
		return
	}

	favoritos, err := models.Favoritos(config.DB, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favoritos)
}
