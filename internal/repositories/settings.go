package repositories

import (
	"taskhive/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	// Lookup satisfies config.SettingsLookup; missing keys and database
	// errors both report absence so fee resolution can fall through.
	Lookup(key string) (string, bool)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(key string) (string, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrRecordNotFound
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *settingsRepository) Set(key, value string) error {
	var setting models.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.Save(&setting).Error
}

func (r *settingsRepository) Lookup(key string) (string, bool) {
	value, err := r.Get(key)
	if err != nil {
		return "", false
	}
	return value, true
}
