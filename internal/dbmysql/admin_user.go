package dbmysql

import "time"

// AdminUser is a moderation operator account
type AdminUser struct {
	AdminID      uint64     `gorm:"primaryKey" json:"admin_id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Status       string     `gorm:"size:20;default:active" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
