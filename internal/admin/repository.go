package admin

import (
	"context"
	"time"

	"gorm.io/gorm"

	"guestbook/internal/dbmysql"
)

// AdminRepository is the record-store contract for operator accounts.
type AdminRepository interface {
	ByEmail(ctx context.Context, email string) (*dbmysql.AdminUser, error)
	TouchLogin(ctx context.Context, adminID uint64, at time.Time) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ByEmail(ctx context.Context, email string) (*dbmysql.AdminUser, error) {
	var admin dbmysql.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) TouchLogin(ctx context.Context, adminID uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.AdminUser{}).
		Where("admin_id = ?", adminID).
		Update("last_login_at", at).Error
}
