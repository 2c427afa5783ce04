package middleware

import (
	"net/http"
	"strings"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UsuarioID uint   `json:"usuario_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given usuario
func GenerateToken(usuario *models.Usuario) (string, error) {
	claims := Claims{
		UsuarioID: usuario.ID,
		Email:     usuario.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Se requiere cabecera Authorization (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
			c.Abort()
			return
		}
		c.Set("usuarioID", claims.UsuarioID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// GetUsuarioID extracts the caller's usuario ID from context
func GetUsuarioID(c *gin.Context) uint {
	val, _ := c.Get("usuarioID")
	return val.(uint)
}
