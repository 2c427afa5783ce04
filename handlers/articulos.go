package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// ListArticulos returns menu articles filtered by restaurant, category,
// availability, ingredient, allergen, diet and price range, wrapped in the
// pagination envelope.
func ListArticulos(c *gin.Context) {
	limite, pagina := parsePaginacion(c)

	query := config.DB.Model(&models.ArticuloMenu{})

	if restaurante := c.Query("restaurante"); restaurante != "" {
		query = query.Where("restaurante_id = ?", restaurante)
	}
	if categoria := c.Query("categoria"); categoria != "" {
		query = query.Where("categoria LIKE ?", "%"+categoria+"%")
	}
	if disponible := c.Query("disponible"); disponible != "" {
		query = query.Where("disponible = ?", disponible == "true")
	}
	if especial := c.Query("especialDelDia"); especial != "" {
		query = query.Where("especial_del_dia = ?", especial == "true")
	}
	if ingrediente := c.Query("ingrediente"); ingrediente != "" {
		query = query.Where("ingredientes LIKE ?", "%"+ingrediente+"%")
	}
	if alergeno := c.Query("alergeno"); alergeno != "" {
		// excludes articles that carry the allergen
		query = query.Where("alergenos NOT LIKE ?", "%"+alergeno+"%")
	}
	if dieta := c.Query("dieta"); dieta != "" {
		query = query.Where("apto_para LIKE ?", "%"+dieta+"%")
	}
	if min := c.Query("precioMin"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			query = query.Where("precio >= ?", v)
		}
	}
	if max := c.Query("precioMax"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			query = query.Where("precio <= ?", v)
		}
	}

	direccion := "asc"
	if c.Query("direccion") == "desc" {
		direccion = "desc"
	}
	switch c.DefaultQuery("ordenarPor", "nombre") {
	case "precio":
		query = query.Order("precio " + direccion)
	case "popularidad":
		query = query.Order("popularidad " + direccion)
	case "fechaCreacion":
		query = query.Order("created_at " + direccion)
	default:
		query = query.Order("nombre " + direccion)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var articulos []models.ArticuloMenu
	if err := query.
		Preload("Restaurante").
		Limit(limite).
		Offset((pagina - 1) * limite).
		Find(&articulos).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articulos":  articulos,
		"paginacion": nuevaPaginacion(total, pagina, limite),
	})
}

// GetArticulo returns a single menu article with its restaurant.
func GetArticulo(c *gin.Context) {
	var articulo models.ArticuloMenu
	if err := config.DB.Preload("Restaurante").First(&articulo, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}
	c.JSON(http.StatusOK, articulo)
}

type ArticuloRequest struct {
	RestauranteID  uint     `json:"restaurante_id" binding:"required"`
	Nombre         string   `json:"nombre" binding:"required"`
	Descripcion    string   `json:"descripcion"`
	Precio         float64  `json:"precio"`
	Categoria      string   `json:"categoria" binding:"required"`
	Ingredientes   []string `json:"ingredientes"`
	Alergenos      []string `json:"alergenos"`
	AptoPara       []string `json:"aptoPara"`
	Imagen         string   `json:"imagen"`
	Popularidad    int      `json:"popularidad"`
	Disponible     *bool    `json:"disponible"`
	EspecialDelDia bool     `json:"especialDelDia"`
}

func (r *ArticuloRequest) toModel() models.ArticuloMenu {
	disponible := true
	if r.Disponible != nil {
		disponible = *r.Disponible
	}
	return models.ArticuloMenu{
		RestauranteID:  r.RestauranteID,
		Nombre:         r.Nombre,
		Descripcion:    r.Descripcion,
		Precio:         r.Precio,
		Categoria:      r.Categoria,
		Ingredientes:   r.Ingredientes,
		Alergenos:      r.Alergenos,
		AptoPara:       r.AptoPara,
		Imagen:         r.Imagen,
		Popularidad:    r.Popularidad,
		Disponible:     disponible,
		EspecialDelDia: r.EspecialDelDia,
	}
}

// CreateArticulo adds a menu article after enum validation and set
// deduplication.
func CreateArticulo(c *gin.Context) {
	var req ArticuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articulo := req.toModel()
	if err := articulo.Normalizar(); err != nil {
		respondError(c, err)
		return
	}

	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, articulo.RestauranteID).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}

	if err := config.DB.Create(&articulo).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, articulo)
}

type UpdateArticuloRequest struct {
	Nombre         *string   `json:"nombre"`
	Descripcion    *string   `json:"descripcion"`
	Precio         *float64  `json:"precio"`
	Categoria      *string   `json:"categoria"`
	Ingredientes   *[]string `json:"ingredientes"`
	Alergenos      *[]string `json:"alergenos"`
	AptoPara       *[]string `json:"aptoPara"`
	Imagen         *string   `json:"imagen"`
	Disponible     *bool     `json:"disponible"`
	EspecialDelDia *bool     `json:"especialDelDia"`
}

// UpdateArticulo applies a whitelisted patch, re-running normalization.
func UpdateArticulo(c *gin.Context) {
	var articulo models.ArticuloMenu
	if err := config.DB.First(&articulo, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}

	var req UpdateArticuloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Nombre != nil {
		articulo.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		articulo.Descripcion = *req.Descripcion
	}
	if req.Precio != nil {
		articulo.Precio = *req.Precio
	}
	if req.Categoria != nil {
		articulo.Categoria = *req.Categoria
	}
	if req.Ingredientes != nil {
		articulo.Ingredientes = *req.Ingredientes
	}
	if req.Alergenos != nil {
		articulo.Alergenos = *req.Alergenos
	}
	if req.AptoPara != nil {
		articulo.AptoPara = *req.AptoPara
	}
	if req.Imagen != nil {
		articulo.Imagen = *req.Imagen
	}
	if req.Disponible != nil {
		articulo.Disponible = *req.Disponible
	}
	if req.EspecialDelDia != nil {
		articulo.EspecialDelDia = *req.EspecialDelDia
	}

	if err := articulo.Normalizar(); err != nil {
		respondError(c, err)
		return
	}
	if err := config.DB.Save(&articulo).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulo)
}

// DeleteArticulo removes a menu article.
func DeleteArticulo(c *gin.Context) {
	var articulo models.ArticuloMenu
	if err := config.DB.First(&articulo, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}
	if err := config.DB.Delete(&articulo).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Artículo eliminado correctamente"})
}

// MenuRestaurante returns a restaurant's menu grouped by categoria.
// Unavailable articles are excluded unless disponibles=false.
func MenuRestaurante(c *gin.Context) {
	restauranteID := paramUint(c, "restauranteId")
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, restauranteID).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}

	query := config.DB.Where("restaurante_id = ?", restauranteID)
	if c.DefaultQuery("disponibles", "true") == "true" {
		query = query.Where("disponible = ?", true)
	}

	var articulos []models.ArticuloMenu
	if err := query.Order("categoria asc, nombre asc").Find(&articulos).Error; err != nil {
		respondError(c, err)
		return
	}

	menu := make(map[string][]models.ArticuloMenu)
	for _, a := range articulos {
		menu[a.Categoria] = append(menu[a.Categoria], a)
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurante": restaurante.Nombre,
		"menu":        menu,
	})
}

// CambiarDisponibilidad toggles an article's availability, or sets it when
// the body carries an explicit value.
func CambiarDisponibilidad(c *gin.Context) {
	var articulo models.ArticuloMenu
	if err := config.DB.First(&articulo, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}

	var req struct {
		Disponible *bool `json:"disponible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nuevo := !articulo.Disponible
	if req.Disponible != nil {
		nuevo = *req.Disponible
	}
	if err := config.DB.Model(&articulo).Update("disponible", nuevo).Error; err != nil {
		respondError(c, err)
		return
	}
	articulo.Disponible = nuevo
	c.JSON(http.StatusOK, articulo)
}

// ToggleEspecialDelDia flips the daily-special flag.
func ToggleEspecialDelDia(c *gin.Context) {
	var articulo models.ArticuloMenu
	if err := config.DB.First(&articulo, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Artículo"))
		return
	}

	nuevo := !articulo.EspecialDelDia
	if err := config.DB.Model(&articulo).Update("especial_del_dia", nuevo).Error; err != nil {
		respondError(c, err)
		return
	}
	articulo.EspecialDelDia = nuevo
	c.JSON(http.StatusOK, articulo)
}

type PopularidadRequest struct {
	// pointer so an explicit zero delta passes required
	Incremento *int `json:"incremento" binding:"required"`
}

// ActualizarPopularidad applies a bounded popularity delta (clamped to
// [0,100]).
func ActualizarPopularidad(c *gin.Context) {
	var req PopularidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	articulo, err := models.AjustarPopularidad(config.DB, paramUint(c, "id"), *req.Incremento)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulo)
}

// BuscarArticulos free-text search over nombre and descripcion.
func BuscarArticulos(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, apperrors.Validation("se requiere un término de búsqueda"))
		return
	}

	patron := "%" + q + "%"
	var articulos []models.ArticuloMenu
	if err := config.DB.
		Where("nombre LIKE ? OR descripcion LIKE ?", patron, patron).
		Limit(10).
		Find(&articulos).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articulos)
}

// CrearMultiplesArticulos bulk-creates menu articles; the batch is atomic.
func CrearMultiplesArticulos(c *gin.Context) {
	var reqs []ArticuloRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(reqs) == 0 {
		respondError(c, apperrors.Validation("se requiere al menos un artículo"))
		return
	}

	articulos := make([]models.ArticuloMenu, 0, len(reqs))
	for _, r := range reqs {
		a := r.toModel()
		if err := a.Normalizar(); err != nil {
			respondError(c, err)
			return
		}
		articulos = append(articulos, a)
	}

	if err := config.DB.Create(&articulos).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"creados": len(articulos), "articulos": articulos})
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// EliminarMultiplesArticulos bulk-deletes menu articles by id.
func EliminarMultiplesArticulos(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := config.DB.Delete(&models.ArticuloMenu{}, req.IDs)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eliminados": result.RowsAffected})
}
