package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles supported by the access-control layer.
// admin_global manages empresas and bypasses the tenant guard.
const (
	RoleAdminGlobal  = "admin_global"
	RoleAdminEmpresa = "admin_empresa"
	RoleGarcom       = "garcom"
	RoleCaixa        = "caixa"
)

// Usuario stores system users with role-based access. EmpresaID is nil
// only for admin_global accounts.
type Usuario struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string     `gorm:"not null"`
	Email     string     `gorm:"uniqueIndex;not null"`
	SenhaHash string     `gorm:"not null"`
	Role      string     `gorm:"type:varchar(20);not null"`
	EmpresaID *uuid.UUID `gorm:"type:uuid;index"`
	Ativo     bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Empresa *Empresa `gorm:"foreignKey:EmpresaID"`
}

// PertenceAEmpresa reports whether the user belongs to the given empresa.
// Global admins act on behalf of any empresa.
func (u *Usuario) PertenceAEmpresa(empresaID uuid.UUID) bool {
	if u.Role == RoleAdminGlobal {
		return true
	}
	return u.EmpresaID != nil && *u.EmpresaID == empresaID
}
