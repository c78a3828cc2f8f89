package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/domain/shared"
)

// GormOptionRepository implements OptionRepository using GORM
type GormOptionRepository struct {
	db *gorm.DB
}

// NewGormOptionRepository creates a new GormOptionRepository
func NewGormOptionRepository(db *gorm.DB) *GormOptionRepository {
	return &GormOptionRepository{db: db}
}

// Get returns the stored value for name, falling back to the built-in default
func (r *GormOptionRepository) Get(ctx context.Context, name string) (string, error) {
	if !settings.IsKnownOption(name) {
		return "", shared.NewDomainError("UNKNOWN_OPTION", "Unrecognized option name: "+name)
	}

	var option settings.Option
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&option).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.DefaultValue(name), nil
		}
		return "", err
	}
	return option.Value, nil
}

// Set writes the value for a recognized option name
func (r *GormOptionRepository) Set(ctx context.Context, name, value string) error {
	if !settings.IsKnownOption(name) {
		return shared.NewDomainError("UNKNOWN_OPTION", "Unrecognized option name: "+name)
	}

	var option settings.Option
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, derr := settings.NewOption(name, value)
		if derr != nil {
			return derr
		}
		return r.db.WithContext(ctx).Create(created).Error
	}
	if err != nil {
		return err
	}

	option.SetValue(value)
	return r.db.WithContext(ctx).Save(&option).Error
}

// Load returns a snapshot of all options with defaults applied
func (r *GormOptionRepository) Load(ctx context.Context) (*settings.Settings, error) {
	var options []settings.Option
	if err := r.db.WithContext(ctx).Find(&options).Error; err != nil {
		return nil, err
	}
	return settings.NewSettings(options), nil
}

// Ensure GormOptionRepository implements OptionRepository
var _ settings.OptionRepository = (*GormOptionRepository)(nil)
