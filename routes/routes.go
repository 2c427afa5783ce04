package routes

import (
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/auth/registro", handlers.Registro)
	api.POST("/auth/login", handlers.Login)

	autenticado := api.Group("")
	autenticado.Use(middleware.AuthRequired())
	autenticado.GET("/perfil", handlers.Perfil)

	// ── Usuarios ───────────────────────────────────────────────────
	usuarios := api.Group("/usuarios")
	{
		usuarios.GET("", handlers.ListUsuarios)
		usuarios.POST("", handlers.CreateUsuario)
		usuarios.GET("/buscar", handlers.BuscarUsuarios)
		usuarios.GET("/cercanos", handlers.UsuariosCercanos)
		usuarios.GET("/:id", handlers.GetUsuario)
		usuarios.PUT("/:id", handlers.UpdateUsuario)
		usuarios.DELETE("/:id", handlers.DeleteUsuario)

		usuarios.POST("/:id/direcciones", handlers.AgregarDireccion)
		usuarios.PUT("/:id/direcciones/:direccionId", handlers.ActualizarDireccion)
		usuarios.DELETE("/:id/direcciones/:direccionId", handlers.EliminarDireccion)

		usuarios.POST("/:id/metodos-pago", handlers.AgregarMetodoPago)
		usuarios.PUT("/:id/metodos-pago/:metodoPagoId", handlers.ActualizarMetodoPago)
		usuarios.DELETE("/:id/metodos-pago/:metodoPagoId", handlers.EliminarMetodoPago)

		usuarios.POST("/:id/favoritos", handlers.AgregarFavorito)
		usuarios.DELETE("/:id/favoritos/:restauranteId", handlers.EliminarFavorito)
	}

	// ── Restaurantes ───────────────────────────────────────────────
	restaurantes := api.Group("/restaurantes")
	{
		restaurantes.GET("", handlers.ListRestaurantes)
		restaurantes.POST("", handlers.CreateRestaurante)
		restaurantes.GET("/buscar", handlers.BuscarRestaurantes)
		restaurantes.GET("/cercanos", handlers.RestaurantesCercanos)
		restaurantes.GET("/:id", handlers.GetRestaurante)
		restaurantes.PUT("/:id", handlers.UpdateRestaurante)
		restaurantes.DELETE("/:id", handlers.DeleteRestaurante)
	}

	// ── Artículos del menú ─────────────────────────────────────────
	articulos := api.Group("/articulos-menu")
	{
		articulos.GET("", handlers.ListArticulos)
		articulos.POST("", handlers.CreateArticulo)
		articulos.GET("/buscar", handlers.BuscarArticulos)
		articulos.GET("/restaurante/:restauranteId", handlers.MenuRestaurante)
		articulos.POST("/bulk/create", handlers.CrearMultiplesArticulos)
		articulos.DELETE("/bulk/delete", handlers.EliminarMultiplesArticulos)
		articulos.GET("/:id", handlers.GetArticulo)
		articulos.PUT("/:id", handlers.UpdateArticulo)
		articulos.DELETE("/:id", handlers.DeleteArticulo)
		articulos.PATCH("/:id/disponibilidad", handlers.CambiarDisponibilidad)
		articulos.PATCH("/:id/especial", handlers.ToggleEspecialDelDia)
		articulos.PATCH("/:id/popularidad", handlers.ActualizarPopularidad)
	}

	// ── Órdenes ────────────────────────────────────────────────────
	ordenes := api.Group("/ordenes")
	{
		ordenes.GET("", handlers.ListOrdenes)
		ordenes.POST("", handlers.CreateOrden)
		ordenes.GET("/:id", handlers.GetOrden)
		ordenes.PUT("/:id", handlers.UpdateOrden)
		ordenes.DELETE("/:id", handlers.DeleteOrden)
	}

	// ── Reseñas ────────────────────────────────────────────────────
	resenas := api.Group("/resenas")
	{
		resenas.GET("", handlers.ListResenas)
		resenas.POST("", handlers.CreateResena)
		resenas.GET("/buscar", handlers.BuscarResenas)
		resenas.GET("/:id", handlers.GetResena)
		resenas.PUT("/:id", handlers.UpdateResena)
		resenas.DELETE("/:id", handlers.DeleteResena)
	}

	// ── Carrito (requiere sesión) ──────────────────────────────────
	carrito := api.Group("/carrito")
	carrito.Use(middleware.AuthRequired())
	{
		carrito.GET("", handlers.GetCarrito)
		carrito.DELETE("", handlers.VaciarCarrito)
		carrito.POST("/items", handlers.AgregarItemCarrito)
		carrito.PUT("/items/:articuloId", handlers.FijarCantidadCarrito)
		carrito.DELETE("/items/:articuloId", handlers.QuitarItemCarrito)
		carrito.POST("/confirmar", handlers.ConfirmarCarrito)
	}
}
