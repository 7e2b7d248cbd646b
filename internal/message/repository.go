package message

import (
	"context"

	"gorm.io/gorm"

	"guestbook/internal/dbmysql"
)

// MessageRepository is the record-store contract for guestbook messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *dbmysql.GuestMessage) error
	ListAll(ctx context.Context) ([]dbmysql.GuestMessage, error)
	ListVisible(ctx context.Context) ([]dbmysql.GuestMessage, error)
	ByID(ctx context.Context, id uint64) (*dbmysql.GuestMessage, error)
	SetHidden(ctx context.Context, id uint64, hidden bool) error
	Delete(ctx context.Context, id uint64) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *dbmysql.GuestMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListAll(ctx context.Context) ([]dbmysql.GuestMessage, error) {
	var msgs []dbmysql.GuestMessage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ListVisible(ctx context.Context) ([]dbmysql.GuestMessage, error) {
	var msgs []dbmysql.GuestMessage
	err := r.db.WithContext(ctx).Where("hidden = ?", false).Order("created_at DESC").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) ByID(ctx context.Context, id uint64) (*dbmysql.GuestMessage, error) {
	var msg dbmysql.GuestMessage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) SetHidden(ctx context.Context, id uint64, hidden bool) error {
	res := r.db.WithContext(ctx).Model(&dbmysql.GuestMessage{}).Where("id = ?", id).Update("hidden", hidden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbmysql.GuestMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
