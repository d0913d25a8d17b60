package token

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("token not found")
	ErrExpired  = errors.New("token expired")

	// errValueTaken signals an opaque-value collision; the store
	// regenerates and retries.
	errValueTaken = errors.New("token value already exists")
)

type Repository interface {
	Create(t *Token) error
	GetByValue(value string, kind Kind) (*Token, error)
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(t *Token) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return errValueTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByValue(value string, kind Kind) (*Token, error) {
	var t Token
	if err := r.db.Where("value = ? AND kind = ?", value, kind).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Token{}, id).Error
}
