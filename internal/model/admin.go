package model

import "time"

const RoleAdmin = "admin"

// AdminUser is a back-office account. PasswordHash is a bcrypt hash;
// the plaintext never leaves the login handler.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Email        string    `json:"email" gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         string    `json:"role" gorm:"type:varchar(32);default:'admin'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
