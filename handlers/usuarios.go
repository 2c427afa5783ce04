package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"food-marketplace-api/apperrors"
	"food-marketplace-api/config"
	"food-marketplace-api/geo"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// ListUsuarios returns users filtered by nombre/apellido, email or ciudad,
// wrapped in the pagination envelope.
func ListUsuarios(c *gin.Context) {
	limite, pagina := parsePaginacion(c)

	query := config.DB.Model(&models.Usuario{})

	if nombre := c.Query("nombre"); nombre != "" {
		patron := "%" + nombre + "%"
		query = query.Where("nombre LIKE ? OR apellido LIKE ?", patron, patron)
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("email LIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if ciudad := c.Query("ciudad"); ciudad != "" {
		query = query.Where(
			"id IN (SELECT usuario_id FROM direccions WHERE ciudad LIKE ?)",
			"%"+ciudad+"%",
		)
	}

	switch c.DefaultQuery("ordenarPor", "nombre") {
	case "fechaRegistro":
		query = query.Order("created_at desc")
	case "ultimoAcceso":
		query = query.Order("ultimo_acceso desc")
	default:
		query = query.Order("nombre asc, apellido asc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var usuarios []models.Usuario
	if err := query.
		Preload("Direcciones").
		Preload("MetodosPago").
		Limit(limite).
		Offset((pagina - 1) * limite).
		Find(&usuarios).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuarios":   usuarios,
		"paginacion": nuevaPaginacion(total, pagina, limite),
	})
}

// GetUsuario returns a single user with sub-collections and favoritos.
func GetUsuario(c *gin.Context) {
	var usuario models.Usuario
	if err := config.DB.
		Preload("Direcciones").
		Preload("MetodosPago").
		Preload("Favoritos").
		First(&usuario, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}
	c.JSON(http.StatusOK, usuario)
}

type CreateUsuarioRequest struct {
	Nombre           string   `json:"nombre" binding:"required"`
	Apellido         string   `json:"apellido" binding:"required"`
	Email            string   `json:"email" binding:"required,email"`
	Telefono         string   `json:"telefono"`
	DietasEspeciales []string `json:"dietasEspeciales"`
}

// CreateUsuario registers a user record (no credentials; see auth.Registro).
func CreateUsuario(c *gin.Context) {
	var req CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existente models.Usuario
	if result := config.DB.Where("email = ?", email).First(&existente); result.Error == nil {
		respondError(c, apperrors.Duplicate("El email ya está registrado"))
		return
	}

	usuario := models.Usuario{
		Nombre:           req.Nombre,
		Apellido:         req.Apellido,
		Email:            email,
		Telefono:         req.Telefono,
		DietasEspeciales: req.DietasEspeciales,
		UltimoAcceso:     time.Now(),
		Activo:           true,
	}
	if err := config.DB.Create(&usuario).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, usuario)
}

type UpdateUsuarioRequest struct {
	Nombre           *string   `json:"nombre"`
	Apellido         *string   `json:"apellido"`
	Email            *string   `json:"email"`
	Telefono         *string   `json:"telefono"`
	DietasEspeciales *[]string `json:"dietasEspeciales"`
	UltimoAcceso     *bool     `json:"ultimoAcceso"`
}

// UpdateUsuario applies a whitelisted patch to a user.
func UpdateUsuario(c *gin.Context) {
	id := paramUint(c, "id")

	var usuario models.Usuario
	if err := config.DB.First(&usuario, id).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}

	var req UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		var otro models.Usuario
		if result := config.DB.Where("email = ? AND id <> ?", email, id).First(&otro); result.Error == nil {
			respondError(c, apperrors.Duplicate("El email ya está en uso"))
			return
		}
		usuario.Email = email
	}
	if req.Nombre != nil {
		usuario.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		usuario.Apellido = *req.Apellido
	}
	if req.Telefono != nil {
		usuario.Telefono = *req.Telefono
	}
	if req.DietasEspeciales != nil {
		usuario.DietasEspeciales = *req.DietasEspeciales
	}
	if req.UltimoAcceso != nil && *req.UltimoAcceso {
		usuario.UltimoAcceso = time.Now()
	}

	if err := config.DB.Save(&usuario).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// DeleteUsuario deactivates a user. Rows are never removed.
func DeleteUsuario(c *gin.Context) {
	var usuario models.Usuario
	if err := config.DB.First(&usuario, paramUint(c, "id")).Error; err != nil {
		respondError(c, apperrors.NotFound("Usuario"))
		return
	}

	if err := config.DB.Model(&usuario).Update("activo", false).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Usuario desactivado correctamente"})
}

// BuscarUsuarios free-text search over nombre, apellido and email.
func BuscarUsuarios(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, apperrors.Validation("se requiere un término de búsqueda"))
		return
	}

	patron := "%" + q + "%"
	var usuarios []models.Usuario
	if err := config.DB.
		Where("nombre LIKE ? OR apellido LIKE ? OR email LIKE ?", patron, patron, patron).
		Limit(10).
		Find(&usuarios).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

// UsuariosCercanos returns users having at least one address within
// distancia meters of the given point.
func UsuariosCercanos(c *gin.Context) {
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

	var usuarios []models.Usuario
	if err := config.DB.Preload("Direcciones").Find(&usuarios).Error; err != nil {
		respondError(c, err)
		return
	}

	cercanos := make([]models.Usuario, 0)
	for _, u := range usuarios {
		for _, d := range u.Direcciones {
			if geo.Distancia(lat, lng, d.Lat, d.Lng) <= distancia {
				cercanos = append(cercanos, u)
				break
			}
		}
	}
	c.JSON(http.StatusOK, cercanos)
}
