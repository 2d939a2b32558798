package model

import (
	"database/sql/driver"
	"safar/shared/constant"
	"safar/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                  = "id"
	FieldEmail               = "email"
	FieldPassword            = "password"
	FieldFullName            = "full_name"
	FieldPhone               = "phone"
	FieldRole                = "role"
	FieldPermissions         = "permissions"
	FieldActive              = "active"
	FieldFailedLoginAttempts = "failed_login_attempts"
	FieldLockedUntil         = "locked_until"
	FieldLastLogin           = "last_login"
)

// Permissions are the named capability flags carried on a user record and
// inside the access-token claims.
type Permissions struct {
	CanManagePackages bool `json:"canManagePackages"`
	CanManageBookings bool `json:"canManageBookings"`
	CanViewAnalytics  bool `json:"canViewAnalytics"`
	CanManageUsers    bool `json:"canManageUsers"`
}

func (p Permissions) Value() (driver.Value, error) {
	return model.JSONBValue(p) //nolint:wrapcheck
}

func (p *Permissions) Scan(src any) error {
	return model.JSONBScan(p, src) //nolint:wrapcheck
}

// Names lists the granted flags, in a stable order.
func (p Permissions) Names() []string {
	names := []string{}

	if p.CanManagePackages {
		names = append(names, constant.PermissionManagePackages)
	}

	if p.CanManageBookings {
		names = append(names, constant.PermissionManageBookings)
	}

	if p.CanViewAnalytics {
		names = append(names, constant.PermissionViewAnalytics)
	}

	if p.CanManageUsers {
		names = append(names, constant.PermissionManageUsers)
	}

	return names
}

// DefaultPermissions maps a role to its default capability flags.
func DefaultPermissions(role string) Permissions {
	switch role {
	case constant.RoleAdmin:
		return Permissions{
			CanManagePackages: true,
			CanManageBookings: true,
			CanViewAnalytics:  true,
			CanManageUsers:    true,
		}
	case constant.RoleStaff:
		return Permissions{
			CanManageBookings: true,
			CanViewAnalytics:  true,
		}
	default:
		return Permissions{}
	}
}

type User struct {
	ID                  string      `db:"id"`
	Email               string      `db:"email"`
	Password            string      `db:"password"`
	FullName            string      `db:"full_name"`
	Phone               *string     `db:"phone"`
	Role                string      `db:"role"`
	Permissions         Permissions `db:"permissions"`
	Active              bool        `db:"active"`
	FailedLoginAttempts int         `db:"failed_login_attempts"`
	LockedUntil         *time.Time  `db:"locked_until"`
	LastLogin           *time.Time  `db:"last_login"`
	model.Metadata
}

// IsLocked reports whether the account is still inside a lockout window.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
