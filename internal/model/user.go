package model

import (
	"time"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is an entry of the user directory that identities are resolved against
type User struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" bson:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-" bson:"password"` // bcrypt hash
	Role       string    `gorm:"type:varchar(50);not null" json:"role" bson:"role"`   // admin, manager, staff
	Department string    `gorm:"type:varchar(100)" json:"department" bson:"department"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt" bson:"updatedAt"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
