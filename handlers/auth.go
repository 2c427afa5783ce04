package handlers

import (
	"net/http"
	"strings"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type RegistroRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Telefono string `json:"telefono"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Registro creates a new usuario account and returns a token
func Registro(c *gin.Context) {
	var req RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existente models.Usuario
	if result := config.DB.Where("email = ?", email).First(&existente); result.Error == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El email ya está registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	usuario := models.Usuario{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Email:        email,
		PasswordHash: string(hash),
		Telefono:     req.Telefono,
		Activo:       true,
	}

	if err := config.DB.Create(&usuario).Error; err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(&usuario)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Cuenta creada correctamente",
		"token":   token,
		"usuario": usuario,
	})
}

// Login authenticates a usuario and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usuario models.Usuario
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := config.DB.Where("email = ? AND activo = ?", email, true).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email o contraseña inválidos"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email o contraseña inválidos"})
		return
	}

	config.DB.Model(&usuario).Update("ultimo_acceso", time.Now())

	token, err := middleware.GenerateToken(&usuario)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Sesión iniciada",
		"token":   token,
		"usuario": usuario,
	})
}

// Perfil returns the authenticated usuario's profile
func Perfil(c *gin.Context) {
	usuarioID := middleware.GetUsuarioID(c)
	var usuario models.Usuario
	if err := config.DB.
		Preload("Direcciones").
		Preload("MetodosPago").
		Preload("Favoritos").
		First(&usuario, usuarioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuario": usuario})
}
