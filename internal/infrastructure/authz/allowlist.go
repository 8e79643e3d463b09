package authz

import "github.com/jhoicas/Tienda-api/internal/application/ports"

var _ ports.Authorizer = (*EmailAllowlist)(nil)

// EmailAllowlist autoriza la gestión de productos por lista de emails admin
// tomada de configuración.
type EmailAllowlist struct {
	emails map[string]struct{}
}

// NewEmailAllowlist construye el autorizador.
func NewEmailAllowlist(adminEmails []string) *EmailAllowlist {
	emails := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e != "" {
			emails[e] = struct{}{}
		}
	}
	return &EmailAllowlist{emails: emails}
}

// CanManageProducts indica si el email puede crear/editar/eliminar productos.
func (a *EmailAllowlist) CanManageProducts(userEmail string) bool {
	_, ok := a.emails[userEmail]
	return ok
}
