package entity

import (
	"fmt"
	"strings"
)

// Role is the canonical account role. Clients send free-form strings
// ("Cliente", "cliente", "VENDEDOR"); parsing happens once at the boundary so
// nothing downstream has to case-fold.
type Role string

const (
	RoleCliente  Role = "Cliente"
	RoleVendedor Role = "Vendedor"
	RoleAdmin    Role = "Admin"
)

// ParseRole normalizes a user-supplied role string.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cliente":
		return RoleCliente, nil
	case "vendedor":
		return RoleVendedor, nil
	case "admin", "administrador":
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("tipo de usuário desconhecido: %q", s)
}

func (r Role) String() string { return string(r) }

// Is reports whether r matches any of the given roles, case-insensitively.
func (r Role) Is(roles ...Role) bool {
	for _, other := range roles {
		if strings.EqualFold(string(r), string(other)) {
			return true
		}
	}
	return false
}
