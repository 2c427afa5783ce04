package models

import (
	"regexp"

	"food-marketplace-api/apperrors"

	"gorm.io/gorm"
)

// The operations in this file maintain the "at most one default" invariant
// over a user's addresses and payment methods, and the duplicate-free
// invariant over favoritos. Each one runs as a single transaction against
// the owning usuario so a crash can never leave two defaults behind.

var cuatroDigitos = regexp.MustCompile(`^\d{4}$`)

func buscarUsuario(tx *gorm.DB, usuarioID uint) (*Usuario, error) {
	var usuario Usuario
	if err := tx.First(&usuario, usuarioID).Error; err != nil {
		return nil, apperrors.NotFound("Usuario")
	}
	return &usuario, nil
}

// ValidarDireccion checks the fields required for a new address.
func ValidarDireccion(d *Direccion) error {
	if !TituloValido(d.Titulo) {
		return apperrors.Validation("%s no es un título de dirección válido", d.Titulo)
	}
	if d.Calle == "" || d.Ciudad == "" {
		return apperrors.Validation("calle y ciudad son obligatorias")
	}
	return nil
}

// ValidarMetodoPago checks the fields required for a new payment method.
func ValidarMetodoPago(m *MetodoPago) error {
	if !TipoMetodoPagoValido(m.Tipo) {
		return apperrors.Validation("%s no es un tipo de método de pago válido", m.Tipo)
	}
	if m.Tipo == TipoTarjeta && !cuatroDigitos.MatchString(m.UltimosDigitos) {
		return apperrors.Validation("últimos dígitos debe ser un número de 4 dígitos para tarjetas")
	}
	return nil
}

// AgregarDireccion appends a new address. An incoming default unsets every
// existing default first; a first non-default address is not auto-promoted.
func AgregarDireccion(db *gorm.DB, usuarioID uint, dir *Direccion) error {
	if err := ValidarDireccion(dir); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		if dir.Predeterminada {
			if err := tx.Model(&Direccion{}).Where("usuario_id = ?", usuarioID).
				Update("predeterminada", false).Error; err != nil {
				return err
			}
		}
		dir.UsuarioID = usuarioID
		return tx.Create(dir).Error
	})
}

// DireccionPatch is the whitelisted set of updatable address fields. Nil
// pointers leave the stored value untouched.
type DireccionPatch struct {
	Titulo         *TituloDireccion `json:"titulo"`
	Calle          *string          `json:"calle"`
	Ciudad         *string          `json:"ciudad"`
	CodigoPostal   *string          `json:"codigoPostal"`
	Lat            *float64         `json:"lat"`
	Lng            *float64         `json:"lng"`
	Predeterminada *bool            `json:"predeterminada"`
}

// ActualizarDireccion applies a whitelisted patch. Promoting an address to
// default demotes all the others in the same transaction.
func ActualizarDireccion(db *gorm.DB, usuarioID, direccionID uint, patch DireccionPatch) (*Direccion, error) {
	var dir Direccion
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		if err := tx.Where("usuario_id = ?", usuarioID).First(&dir, direccionID).Error; err != nil {
			return apperrors.NotFound("Dirección")
		}
		if patch.Predeterminada != nil && *patch.Predeterminada && !dir.Predeterminada {
			if err := tx.Model(&Direccion{}).Where("usuario_id = ?", usuarioID).
				Update("predeterminada", false).Error; err != nil {
				return err
			}
		}
		if patch.Titulo != nil {
			dir.Titulo = *patch.Titulo
		}
		if patch.Calle != nil {
			dir.Calle = *patch.Calle
		}
		if patch.Ciudad != nil {
			dir.Ciudad = *patch.Ciudad
		}
		if patch.CodigoPostal != nil {
			dir.CodigoPostal = *patch.CodigoPostal
		}
		if patch.Lat != nil {
			dir.Lat = *patch.Lat
		}
		if patch.Lng != nil {
			dir.Lng = *patch.Lng
		}
		if patch.Predeterminada != nil {
			dir.Predeterminada = *patch.Predeterminada
		}
		if err := ValidarDireccion(&dir); err != nil {
			return err
		}
		return tx.Save(&dir).Error
	})
	if err != nil {
		return nil, err
	}
	return &dir, nil
}

// EliminarDireccion deletes the address. Removing the default promotes the
// first remaining address (lowest id) so exactly one default survives.
func EliminarDireccion(db *gorm.DB, usuarioID, direccionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		var dir Direccion
		if err := tx.Where("usuario_id = ?", usuarioID).First(&dir, direccionID).Error; err != nil {
			return apperrors.NotFound("Dirección")
		}
		eraPredeterminada := dir.Predeterminada
		if err := tx.Delete(&dir).Error; err != nil {
			return err
		}
		if eraPredeterminada {
			var primera Direccion
			err := tx.Where("usuario_id = ?", usuarioID).Order("id asc").First(&primera).Error
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return tx.Model(&primera).Update("predeterminada", true).Error
		}
		return nil
	})
}

// AgregarMetodoPago appends a new payment method under the same
// single-default discipline as addresses.
func AgregarMetodoPago(db *gorm.DB, usuarioID uint, mp *MetodoPago) error {
	if err := ValidarMetodoPago(mp); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		if mp.Predeterminado {
			if err := tx.Model(&MetodoPago{}).Where("usuario_id = ?", usuarioID).
				Update("predeterminado", false).Error; err != nil {
				return err
			}
		}
		mp.UsuarioID = usuarioID
		return tx.Create(mp).Error
	})
}

// MetodoPagoPatch is the whitelisted set of updatable payment-method fields.
type MetodoPagoPatch struct {
	Tipo            *TipoMetodoPago `json:"tipo"`
	UltimosDigitos  *string         `json:"ultimosDigitos"`
	FechaExpiracion *string         `json:"fechaExpiracion"`
	Predeterminado  *bool           `json:"predeterminado"`
}

// ActualizarMetodoPago applies a whitelisted patch, demoting other defaults
// when this one is promoted.
func ActualizarMetodoPago(db *gorm.DB, usuarioID, metodoID uint, patch MetodoPagoPatch) (*MetodoPago, error) {
	var mp MetodoPago
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		if err := tx.Where("usuario_id = ?", usuarioID).First(&mp, metodoID).Error; err != nil {
			return apperrors.NotFound("Método de pago")
		}
		if patch.Predeterminado != nil && *patch.Predeterminado && !mp.Predeterminado {
			if err := tx.Model(&MetodoPago{}).Where("usuario_id = ?", usuarioID).
				Update("predeterminado", false).Error; err != nil {
				return err
			}
		}
		if patch.Tipo != nil {
			mp.Tipo = *patch.Tipo
		}
		if patch.UltimosDigitos != nil {
			mp.UltimosDigitos = *patch.UltimosDigitos
		}
		if patch.FechaExpiracion != nil {
			mp.FechaExpiracion = *patch.FechaExpiracion
		}
		if patch.Predeterminado != nil {
			mp.Predeterminado = *patch.Predeterminado
		}
		if err := ValidarMetodoPago(&mp); err != nil {
			return err
		}
		return tx.Save(&mp).Error
	})
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

// EliminarMetodoPago deletes the payment method, promoting the first
// remaining one when the default was removed.
func EliminarMetodoPago(db *gorm.DB, usuarioID, metodoID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := buscarUsuario(tx, usuarioID); err != nil {
			return err
		}
		var mp MetodoPago
		if err := tx.Where("usuario_id = ?", usuarioID).First(&mp, metodoID).Error; err != nil {
			return apperrors.NotFound("Método de pago")
		}
		eraPredeterminado := mp.Predeterminado
		if err := tx.Delete(&mp).Error; err != nil {
			return err
		}
		if eraPredeterminado {
			var primero MetodoPago
			err := tx.Where("usuario_id = ?", usuarioID).Order("id asc").First(&primero).Error
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return tx.Model(&primero).Update("predeterminado", true).Error
		}
		return nil
	})
}

// AgregarFavorito adds a restaurant to the user's favoritos. Adding an
// existing favorito is a DuplicateError.
func AgregarFavorito(db *gorm.DB, usuarioID, restauranteID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		usuario, err := buscarUsuario(tx, usuarioID)
		if err != nil {
			return err
		}
		var restaurante Restaurante
		if err := tx.First(&restaurante, restauranteID).Error; err != nil {
			return apperrors.NotFound("Restaurante")
		}
		var existentes int64
		if err := tx.Table("usuario_favoritos").
			Where("usuario_id = ? AND restaurante_id = ?", usuarioID, restauranteID).
			Count(&existentes).Error; err != nil {
			return err
		}
		if existentes > 0 {
			return apperrors.Duplicate("el restaurante ya está en favoritos")
		}
		return tx.Model(usuario).Association("Favoritos").Append(&restaurante)
	})
}

// EliminarFavorito removes a restaurant from favoritos. Removing an absent
// favorito is a no-op.
func EliminarFavorito(db *gorm.DB, usuarioID, restauranteID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		usuario, err := buscarUsuario(tx, usuarioID)
		if err != nil {
			return err
		}
		return tx.Model(usuario).Association("Favoritos").
			Delete(&Restaurante{ID: restauranteID})
	})
}

// Favoritos returns the user's favourite restaurants.
func Favoritos(db *gorm.DB, usuarioID uint) ([]Restaurante, error) {
	usuario, err := buscarUsuario(db, usuarioID)
	if err != nil {
		return nil, err
	}
	var favoritos []Restaurante
	if err := db.Model(usuario).Association("Favoritos").Find(&favoritos); err != nil {
		return nil, err
	}
	return favoritos, nil
}
