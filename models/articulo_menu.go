package models

import (
	"time"

	"food-marketplace-api/apperrors"

	"gorm.io/gorm"
)

// CategoriasValidas is the closed set of menu categories.
var CategoriasValidas = []string{
	"Entrada", "Plato Principal", "Postre", "Bebida", "Acompañamiento", "Especial",
}

// AlergenosValidos is the closed set of recognised allergens.
var AlergenosValidos = []string{
	"Gluten", "Crustáceos", "Huevos", "Pescado", "Cacahuetes",
	"Soja", "Lácteos", "Frutos secos", "Apio", "Mostaza",
	"Sésamo", "Sulfitos", "Altramuces", "Moluscos",
}

// DietasValidas is the closed set of dietary-fit tags.
var DietasValidas = []string{
	"Vegetariano", "Vegano", "Sin Gluten", "Sin Lactosa",
	"Bajo en Calorías", "Sin Azúcar", "Keto", "Paleo",
}

const ImagenPorDefecto = "/default-food-image.jpg"

type ArticuloMenu struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	RestauranteID  uint        `json:"restaurante_id" gorm:"not null;index"`
	Restaurante    Restaurante `json:"restaurante,omitempty" gorm:"foreignKey:RestauranteID"`
	Nombre         string      `json:"nombre" gorm:"not null;index"`
	Descripcion    string      `json:"descripcion"`
	Precio         float64     `json:"precio" gorm:"not null"`
	Categoria      string      `json:"categoria" gorm:"not null"`
	Ingredientes   []string    `json:"ingredientes" gorm:"serializer:json"`
	Alergenos      []string    `json:"alergenos" gorm:"serializer:json"`
	AptoPara       []string    `json:"aptoPara" gorm:"serializer:json"`
	Imagen         string      `json:"imagen" gorm:"default:'/default-food-image.jpg'"`
	Popularidad    int         `json:"popularidad" gorm:"default:0"`
	Disponible     bool        `json:"disponible" gorm:"default:true"`
	EspecialDelDia bool        `json:"especialDelDia" gorm:"default:false"`
	CreatedAt      time.Time   `json:"fechaCreacion"`
	UpdatedAt      time.Time   `json:"fechaActualizacion"`
}

func contiene(valores []string, v string) bool {
	for _, x := range valores {
		if x == v {
			return true
		}
	}
	return false
}

func deduplicar(valores []string) []string {
	if len(valores) == 0 {
		return valores
	}
	vistos := make(map[string]bool, len(valores))
	resultado := valores[:0]
	for _, v := range valores {
		if !vistos[v] {
			vistos[v] = true
			resultado = append(resultado, v)
		}
	}
	return resultado
}

// Normalizar validates the closed enums, deduplicates the set-valued fields
// and applies defaults. Called before every create/update instead of relying
// on an implicit persistence hook.
func (a *ArticuloMenu) Normalizar() error {
	if a.Nombre == "" {
		return apperrors.Validation("el nombre del artículo es obligatorio")
	}
	if a.RestauranteID == 0 {
		return apperrors.Validation("el restaurante es obligatorio")
	}
	if a.Precio < 0 {
		return apperrors.Validation("el precio no puede ser negativo")
	}
	if !contiene(CategoriasValidas, a.Categoria) {
		return apperrors.Validation("%s no es una categoría válida", a.Categoria)
	}
	for _, al := range a.Alergenos {
		if !contiene(AlergenosValidos, al) {
			return apperrors.Validation("%s no es un alérgeno reconocido", al)
		}
	}
	for _, d := range a.AptoPara {
		if !contiene(DietasValidas, d) {
			return apperrors.Validation("%s no es una opción de dieta válida", d)
		}
	}
	a.Ingredientes = deduplicar(a.Ingredientes)
	a.Alergenos = deduplicar(a.Alergenos)
	a.AptoPara = deduplicar(a.AptoPara)
	if a.Imagen == "" {
		a.Imagen = ImagenPorDefecto
	}
	if a.Popularidad < 0 {
		a.Popularidad = 0
	} else if a.Popularidad > 100 {
		a.Popularidad = 100
	}
	return nil
}

// AjustarPopularidad applies a bounded delta to the article's popularity and
// persists the clamped value.
func AjustarPopularidad(db *gorm.DB, articuloID uint, incremento int) (*ArticuloMenu, error) {
	var articulo ArticuloMenu
	if err := db.First(&articulo, articuloID).Error; err != nil {
		return nil, apperrors.NotFound("Artículo")
	}

	nueva := articulo.Popularidad + incremento
	if nueva < 0 {
		nueva = 0
	} else if nueva > 100 {
		nueva = 100
	}

	if err := db.Model(&articulo).Update("popularidad", nueva).Error; err != nil {
		return nil, err
	}
	articulo.Popularidad = nueva
	return &articulo, nil
}
