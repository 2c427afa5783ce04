package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/geo"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// ListRestaurantes returns restaurants filtered by tipoCocina and ciudad,
// wrapped in the pagination envelope.
func ListRestaurantes(c *gin.Context) {
	limite, pagina := parsePaginacion(c)

	query := config.DB.Model(&models.Restaurante{})

	if tipo := c.Query("tipoCocina"); tipo != "" {
		// tiposCocina is stored as a JSON array column
		query = query.Where("tipos_cocina LIKE ?", "%"+tipo+"%")
	}
	if ciudad := c.Query("ciudad"); ciudad != "" {
		query = query.Where("direccion_ciudad LIKE ?", "%"+ciudad+"%")
	}

	switch c.Query("ordenarPor") {
	case "calificacion":
		query = query.Order("calificacion_promedio desc")
	case "precio":
		query = query.Order("precio_promedio asc")
	default:
		query = query.Order("nombre asc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var restaurantes []models.Restaurante
	if err := query.
		Limit(limite).
		Offset((pagina - 1) * limite).
		Find(&restaurantes).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurantes": restaurantes,
		"paginacion":   nuevaPaginacion(total, pagina, limite),
	})
}

// GetRestaurante returns a single restaurant.
func GetRestaurante(c *gin.Context) {
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}
	c.JSON(http.StatusOK, restaurante)
}

type RestauranteRequest struct {
	Nombre         string                `json:"nombre" binding:"required"`
	Descripcion    string                `json:"descripcion"`
	Telefono       string                `json:"telefono"`
	Email          string                `json:"email"`
	Direccion      models.DireccionLocal `json:"direccion"`
	TiposCocina    []string              `json:"tiposCocina"`
	PrecioPromedio float64               `json:"precioPromedio"`
	Imagenes       []string              `json:"imagenes"`
}

// CreateRestaurante registers a new restaurant.
func CreateRestaurante(c *gin.Context) {
	var req RestauranteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurante := models.Restaurante{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Direccion:      req.Direccion,
		TiposCocina:    req.TiposCocina,
		PrecioPromedio: req.PrecioPromedio,
		Imagenes:       req.Imagenes,
		Activo:         true,
	}
	if err := config.DB.Create(&restaurante).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurante)
}

type UpdateRestauranteRequest struct {
	Nombre         *string                `json:"nombre"`
	Descripcion    *string                `json:"descripcion"`
	Telefono       *string                `json:"telefono"`
	Email          *string                `json:"email"`
	Direccion      *models.DireccionLocal `json:"direccion"`
	TiposCocina    *[]string              `json:"tiposCocina"`
	PrecioPromedio *float64               `json:"precioPromedio"`
	Imagenes       *[]string              `json:"imagenes"`
	Activo         *bool                  `json:"activo"`
}

// UpdateRestaurante applies a whitelisted patch.
func UpdateRestaurante(c *gin.Context) {
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}

	var req UpdateRestauranteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Nombre != nil {
		restaurante.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		restaurante.Descripcion = *req.Descripcion
	}
	if req.Telefono != nil {
		restaurante.Telefono = *req.Telefono
	}
	if req.Email != nil {
		restaurante.Email = *req.Email
	}
	if req.Direccion != nil {
		restaurante.Direccion = *req.Direccion
	}
	if req.TiposCocina != nil {
		restaurante.TiposCocina = *req.TiposCocina
	}
	if req.PrecioPromedio != nil {
		restaurante.PrecioPromedio = *req.PrecioPromedio
	}
	if req.Imagenes != nil {
		restaurante.Imagenes = *req.Imagenes
	}
	if req.Activo != nil {
		restaurante.Activo = *req.Activo
	}

	if err := config.DB.Save(&restaurante).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurante)
}

// DeleteRestaurante removes a restaurant.
func DeleteRestaurante(c *gin.Context) {
	var restaurante models.Restaurante
	if err := config.DB.First(&restaurante, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Restaurante"))
		return
	}
	if err := config.DB.Delete(&restaurante).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Restaurante eliminado correctamente"})
}

// BuscarRestaurantes free-text search over nombre and descripcion.
func BuscarRestaurantes(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, apperrors.Validation("se requiere un término de búsqueda"))
		return
	}

	patron := "%" + q + "%"
	var restaurantes []models.Restaurante
	if err := config.DB.
		Where("nombre LIKE ? OR descripcion LIKE ?", patron, patron).
		Limit(10).
		Find(&restaurantes).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurantes)
}

// RestaurantesCercanos returns active restaurants within distancia meters of
// the given point, nearest first.
func RestaurantesCercanos(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		respondError(c, apperrors.Validation("se requieren coordenadas (lng, lat)"))
		return
	}
	distancia := 5000.0
	if v, err := strconv.ParseFloat(c.Query("distancia"), 64); err == nil && v > 0 {
		distancia = v
	}

	var restaurantes []models.Restaurante
	if err := config.DB.Where("activo = ?", true).Find(&restaurantes).Error; err != nil {
		respondError(c, err)
		return
	}

	type conDistancia struct {
		restaurante models.Restaurante
		metros      float64
	}
	cercanos := make([]conDistancia, 0)
	for _, r := range restaurantes {
		d := geo.Distancia(lat, lng, r.Direccion.Lat, r.Direccion.Lng)
		if d <= distancia {
			cercanos = append(cercanos, conDistancia{r, d})
		}
	}
	sort.Slice(cercanos, func(i, j int) bool { return cercanos[i].metros < cercanos[j].metros })

	resultado := make([]models.Restaurante, len(cercanos))
	for i, cd := range cercanos {
		resultado[i] = cd.restaurante
	}
	c.JSON(http.StatusOK, resultado)
}
