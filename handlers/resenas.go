package handlers

import (
	"net/http"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// ListResenas returns reviews filtered by restauranteId and usuarioId,
// wrapped in the pagination envelope.
func ListResenas(c *gin.Context) {
	limite, pagina := parsePaginacion(c)

	query := config.DB.Model(&models.Resena{})

	if restauranteID := c.Query("restauranteId"); restauranteID != "" {
		query = query.Where("restaurante_id = ?", restauranteID)
	}
	if usuarioID := c.Query("usuarioId"); usuarioID != "" {
		query = query.Where("usuario_id = ?", usuarioID)
	}

	if c.Query("ordenarPor") == "calificacion" {
		query = query.Order("calificacion desc")
	} else {
		query = query.Order("created_at desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var resenas []models.Resena
	if err := query.
		Preload("Usuario").
		Preload("Restaurante").
		Limit(limite).
		Offset((pagina - 1) * limite).
		Find(&resenas).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resenas":    resenas,
		"paginacion": nuevaPaginacion(total, pagina, limite),
	})
}

// GetResena returns a single review.
func GetResena(c *gin.Context) {
	var resena models.Resena
	if err := config.DB.
		Preload("Usuario").
		Preload("Restaurante").
		First(&resena, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Reseña"))
		return
	}
	c.JSON(http.StatusOK, resena)
}

type ResenaRequest struct {
	Usuario      uint   `json:"usuario" binding:"required"`
	Restaurante  uint   `json:"restaurante" binding:"required"`
	Calificacion int    `json:"calificacion" binding:"required,min=1,max=5"`
	Comentario   string `json:"comentario"`
}

// CreateResena persists a new review after checking both references.
func CreateResena(c *gin.Context) {
	var req ResenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	if err := config.DB.First(&usuario, req.Usuario).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, req.Restaurante).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}

	resena := models.Resena{
		UsuarioID:     req.Usuario,
		RestauranteID: req.Restaurante,
		Calificacion:  req.Calificacion,
		Comentario:    req.Comentario,
	}
	if err := config.DB.Create(&resena).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resena)
}

type UpdateResenaRequest struct {
	Calificacion *int    `json:"calificacion"`
	Comentario   *string `json:"comentario"`
}

// UpdateResena applies a whitelisted patch to a review.
func UpdateResena(c *gin.Context) {
	var resena models.Resena
	if err := config.DB.First(&resena, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Reseña"))
		return
	}

	var req UpdateResenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Calificacion != nil {
		if *req.Calificacion < 1 || *req.Calificacion > 5 {
			respondError(c, apperrors.Validation("la calificación debe estar entre 1 y 5"))
			return
		}
		resena.Calificacion = *req.Calificacion
	}
	if req.Comentario != nil {
		resena.Comentario = *req.Comentario
	}

	if err := config.DB.Save(&resena).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resena)
}

// DeleteResena removes a review.
func DeleteResena(c *gin.Context) {
	var resena models.Resena
	if err := config.DB.First(&resena, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Reseña"))
		return
	}
	if err := config.DB.Delete(&resena).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Reseña eliminada correctamente"})
}

// BuscarResenas free-text search over comentario.
func BuscarResenas(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, apperrors.Validation("se requiere un término de búsqueda"))
		return
	}

	var resenas []models.Resena
	if err := config.DB.
		Where("comentario LIKE ?", "%"+q+"%").
		Limit(10).
		Find(&resenas).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resenas)
}
