package handlers

import (
	"net/http"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListOrdenes returns orders filtered by usuarioId, restauranteId and
// estado, wrapped in the pagination envelope.
func ListOrdenes(c *gin.Context) {
	limite, pagina := parsePaginacion(c)

	query := config.DB.Model(&models.Orden{})

	if usuarioID := c.Query("usuarioId"); usuarioID != "" {
		query = query.Where("usuario_id = ?", usuarioID)
	}
	if restauranteID := c.Query("restauranteId"); restauranteID != "" {
		query = query.Where("restaurante_id = ?", restauranteID)
	}
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	if c.Query("ordenarPor") == "total" {
		query = query.Order("total desc")
	} else {
		query = query.Order("created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var ordenes []models.Orden
	if err := query.
		Preload("Usuario").
		Preload("Restaurante").
		Preload("Items.Articulo").
		Limit(limite).
		Offset((pagina - 1) * limite).
		Find(&ordenes).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ordenes":    ordenes,
		"paginacion": nuevaPaginacion(total, pagina, limite),
	})
}

// GetOrden returns a single order with user, restaurant and line articles.
func GetOrden(c *gin.Context) {
	var orden models.Orden
	if err := config.DB.
		Preload("Usuario").
		Preload("Restaurante").
		Preload("Items.Articulo").
		First(&orden, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Orden"))
		return
	}
	c.JSON(http.StatusOK, orden)
}

type CreateOrdenRequest struct {
	Usuario     uint `json:"usuario" binding:"required"`
	Restaurante uint `json:"restaurante" binding:"required"`
	Items       []struct {
		Articulo uint `json:"articulo" binding:"required"`
		Cantidad int  `json:"cantidad" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
	Estado models.EstadoOrden `json:"estado"`
	// Accepted for wire compatibility; the server recomputes the total from
	// current article prices.
	Total float64 `json:"total"`
}

// CreateOrden persists a new order. Totals are computed server-side at
// creation and never recomputed afterwards; orders always start pending.
func CreateOrden(c *gin.Context) {
	var req CreateOrdenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Estado != "" && req.Estado != models.EstadoPendiente {
		respondError(c, apperrors.Validation("una orden nueva debe crearse en estado pendiente"))
		return
	}

	var usuario models.Usuario
	if err := config.DB.Where("activo = ?", true).First(&usuario, req.Usuario).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, req.Restaurante).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}
	if !restaurante.Activo {
		respondError(c, apperrors.Validation("el restaurante no está activo"))
		return
	}

	var items []models.OrdenItem
	var total float64
	for _, linea := range req.Items {
		var articulo models.ArticuloMenu
		if err := config.DB.First(&articulo, linea.Articulo).Error; err != nil {
			respondError(c, apperrors.NotFound("Artículo"))
			return
		}
		if articulo.RestauranteID != restaurante.ID {
			respondError(c, apperrors.Validation("el artículo '%s' no pertenece a este restaurante", articulo.Nombre))
			return
		}
		if !articulo.Disponible {
			respondError(c, apperrors.Validation("el artículo '%s' no está disponible", articulo.Nombre))
			return
		}
		total += articulo.Precio * float64(linea.Cantidad)
		items = append(items, models.OrdenItem{
			ArticuloID: articulo.ID,
			Cantidad:   linea.Cantidad,
			Precio:     articulo.Precio,
			Nombre:     articulo.Nombre,
		})
	}

	orden := models.Orden{
		UsuarioID:     usuario.ID,
		RestauranteID: restaurante.ID,
		Items:         items,
		Estado:        models.EstadoPendiente,
		Total:         total,
	}
	if err := config.DB.Create(&orden).Error; err != nil {
		respondError(c, err)
		return
	}

	if err := config.DB.Preload("Items.Articulo").Preload("Restaurante").
		First(&orden, orden.ID).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orden)
}

type UpdateOrdenRequest struct {
	Estado models.EstadoOrden `json:"estado" binding:"required"`
}

// UpdateOrden moves the order through its lifecycle. Transitions are forward
// only; terminal states never change again. The write is conditional on the
// state the guard validated, so two overlapping updates can never both win.
func UpdateOrden(c *gin.Context) {
	var req UpdateOrdenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.EstadoValido(req.Estado) {
		respondError(c, apperrors.Validation("%s no es un estado válido", req.Estado))
		return
	}

	var orden models.Orden
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&orden, paramUint(c, "id")).Error; err != nil {
			return apperrors.NotFound("Orden")
		}
		if err := statemachine.CanTransition(orden.Estado, req.Estado); err != nil {
			return err
		}

		resultado := tx.Model(&models.Orden{}).
			Where("id = ? AND estado = ?", orden.ID, orden.Estado).
			Update("estado", req.Estado)
		if resultado.Error != nil {
			return resultado.Error
		}
		if resultado.RowsAffected == 0 {
			// a concurrent update moved the order between the read and the
			// write; report the transition against the state that won
			var actual models.Orden
			if err := tx.First(&actual, orden.ID).Error; err != nil {
				return err
			}
			return apperrors.InvalidTransition(string(actual.Estado), string(req.Estado))
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	orden.Estado = req.Estado
	c.JSON(http.StatusOK, orden)
}

// DeleteOrden removes an order; only terminal (entregado/cancelado) orders
// may be deleted so the lifecycle cannot be bypassed.
func DeleteOrden(c *gin.Context) {
	var orden models.Orden
	if err := config.DB.First(&orden, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Orden"))
		return
	}

	if !statemachine.EsTerminal(orden.Estado) {
		respondError(c, apperrors.Validation("solo se pueden eliminar órdenes entregadas o canceladas"))
		return
	}

	if err := config.DB.Select("Items").Delete(&orden).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Orden eliminada correctamente"})
}
