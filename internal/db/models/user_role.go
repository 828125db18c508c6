package models

import "time"

// UserRole is the durable binding of one user to one role.
// Its ID is the actor reference recorded on every downstream write, so
// an action is always attributable to "this user acting as this role".
// At most one binding exists per (user, role) pair; the unique index is
// the only guard against concurrent duplicate creation.
type UserRole struct {
	// ID is the unique identifier for the binding.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the bound user.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_user_role"`
	// User is the associated user (enforced with a foreign key constraint).
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// RoleID is the bound role.
	RoleID uint `gorm:"not null;uniqueIndex:idx_user_role"`
	// Role is the associated role.
	Role Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// CreatedAt is the timestamp when the binding was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
