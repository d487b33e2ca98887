// Package access implementa el evaluador de acceso: predicados puros que
// deciden si un principal puede ejecutar una acción sobre una tarjeta.
// Cuando un no-dueño sin rol ADMIN es rechazado en una lectura o mutación,
// los casos de uso responden "no encontrado" en lugar de "prohibido" para
// que los ids de tarjeta no sean sondeables.
package access

import "github.com/jhoicas/Tarjetas-api/internal/domain/entity"

// CanListAllCards lista global de tarjetas: solo ADMIN.
func CanListAllCards(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanListOwnCards lista de tarjetas propias: rol USER.
func CanListOwnCards(p entity.Principal) bool {
	return p.IsUser()
}

// CanCreateCard creación de tarjetas: solo ADMIN.
func CanCreateCard(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanReadCard lectura de una tarjeta: ADMIN o el dueño.
func CanReadCard(p entity.Principal, ownerID int64) bool {
	return p.IsAdmin() || ownerID == p.UserID
}

// CanUpdateCard actualización administrativa: solo ADMIN.
func CanUpdateCard(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanDeleteCard borrado: solo ADMIN.
func CanDeleteCard(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanBlockCard bloqueo iniciado por el titular: rol USER y ser el dueño.
func CanBlockCard(p entity.Principal, ownerID int64) bool {
	return p.IsUser() && ownerID == p.UserID
}

// CanActivateCard activación: solo ADMIN.
func CanActivateCard(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanTransfer transferencia entre dos tarjetas: rol USER y ambas del principal.
func CanTransfer(p entity.Principal, fromOwnerID, toOwnerID int64) bool {
	return p.IsUser() && fromOwnerID == p.UserID && toOwnerID == p.UserID
}

// CanListUsers listado de usuarios: solo ADMIN.
func CanListUsers(p entity.Principal) bool {
	return p.IsAdmin()
}

// CanCreateUser aprovisionamiento de usuarios: solo ADMIN.
func CanCreateUser(p entity.Principal) bool {
	return p.IsAdmin()
}
