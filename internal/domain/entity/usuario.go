package entity

import (
	"time"
)

// Usuario is the login identity. SenhaHash holds a bcrypt hash.
//
// An account is created inactive; it becomes active once the e-mail
// verification code is confirmed. The role is fixed at registration and
// decides which profile table must hold a row before perfil_completo is true.
type Usuario struct {
	ID               int64
	Email            string
	SenhaHash        string
	Tipo             Role
	Ativo            bool
	EmailConfirmado  bool
	TokenConfirmacao *string
	TokenExpiraEm    *time.Time
	UltimoLogin      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
