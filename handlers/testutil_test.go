package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest points config.DB at a fresh in-memory database and returns a
// router with the routes under test. usuarioID is injected in place of the
// JWT middleware so cart handlers see an authenticated session.
func setupTest(t *testing.T, usuarioID uint) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	api := r.Group("/api")

	ordenes := api.Group("/ordenes")
	ordenes.GET("", ListOrdenes)
	ordenes.POST("", CreateOrden)
	ordenes.GET("/:id", GetOrden)
	ordenes.PUT("/:id", UpdateOrden)
	ordenes.DELETE("/:id", DeleteOrden)

	articulos := api.Group("/articulos-menu")
	articulos.PATCH("/:id/disponibilidad", CambiarDisponibilidad)
	articulos.PATCH("/:id/popularidad", ActualizarPopularidad)

	carrito := api.Group("/carrito")
	carrito.Use(func(c *gin.Context) {
		c.Set("usuarioID", usuarioID)
		c.Set("email", "test@example.com")
	})
	carrito.GET("", GetCarrito)
	carrito.DELETE("", VaciarCarrito)
	carrito.POST("/items", AgregarItemCarrito)
	carrito.PUT("/items/:articuloId", FijarCantidadCarrito)
	carrito.DELETE("/items/:articuloId", QuitarItemCarrito)
	carrito.POST("/confirmar", ConfirmarCarrito)

	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), "body: %s", w.Body.String())
}

func seedUsuario(t *testing.T, email string) *models.Usuario {
	t.Helper()
	usuario := &models.Usuario{
		Nombre:       "Luis",
		Apellido:     "Pérez",
		Email:        email,
		PasswordHash: "x",
		Activo:       true,
	}
	require.NoError(t, config.DB.Create(usuario).Error)
	return usuario
}

func seedRestaurante(t *testing.T, nombre string) *models.Restaurante {
	t.Helper()
	restaurante := &models.Restaurante{
		Nombre:      nombre,
		TiposCocina: []string{"Española"},
		Direccion:   models.DireccionLocal{Calle: "Calle Mayor 1", Ciudad: "Madrid"},
		Activo:      true,
	}
	require.NoError(t, config.DB.Create(restaurante).Error)
	return restaurante
}

func seedArticulo(t *testing.T, restauranteID uint, nombre string, precio float64) *models.ArticuloMenu {
	t.Helper()
	articulo := &models.ArticuloMenu{
		RestauranteID: restauranteID,
		Nombre:        nombre,
		Precio:        precio,
		Categoria:     "Plato Principal",
		Disponible:    true,
	}
	require.NoError(t, config.DB.Create(articulo).Error)
	return articulo
}
