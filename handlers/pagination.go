package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Paginacion is the envelope every list endpoint wraps its results in.
type Paginacion struct {
	Total   int64 `json:"total"`
	Pagina  int   `json:"pagina"`
	Paginas int   `json:"paginas"`
}

const (
	limiteDefecto = 10
	limiteMaximo  = 100
)

// parsePaginacion reads the limite and pagina query parameters, falling
// back to 10 per page starting at page 1.
func parsePaginacion(c *gin.Context) (limite, pagina int) {
	limite = limiteDefecto
	if v, err := strconv.Atoi(c.DefaultQuery("limite", "10")); err == nil && v > 0 {
		limite = v
	}
	if limite > limiteMaximo {
		limite = limiteMaximo
	}
	pagina = 1
	if v, err := strconv.Atoi(c.DefaultQuery("pagina", "1")); err == nil && v > 0 {
		pagina = v
	}
	return limite, pagina
}

func nuevaPaginacion(total int64, pagina, limite int) Paginacion {
	paginas := int(total) / limite
	if int(total)%limite != 0 {
		paginas++
	}
	return Paginacion{Total: total, Pagina: pagina, Paginas: paginas}
}

// paramUint parses a numeric path parameter; returns 0 when absent or
// malformed, which callers treat as not found.
func paramUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
