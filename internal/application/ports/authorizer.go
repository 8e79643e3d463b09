package ports

// Authorizer puerto de autorización para operaciones administrativas.
// La decisión (allowlist, roles, etc.) vive fuera del caso de uso.
type Authorizer interface {
	CanManageProducts(userEmail string) bool
}
