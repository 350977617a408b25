package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lodging-backend/models"
	"lodging-backend/services"
)

// Staff-console CRUD over room types and add-ons. These sit outside the
// services.BookingRepository contract: the engine only reads them.

func (r *GormRepository) CreateRoomType(rt *models.RoomType) error {
	if err := r.DB.Create(rt).Error; err != nil {
		return fmt.Errorf("create room type: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateRoomType(rt *models.RoomType) error {
	result := r.DB.Model(&models.RoomType{}).Where("id = ?", rt.ID).
		Select("Name", "Description", "NormalPrice", "RoomCount", "MaxGuests", "Priority", "RoomNumbers").
		Updates(rt)
	if result.Error != nil {
		return fmt.Errorf("update room type %d: %w", rt.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrRoomTypeNotFound
	}
	return nil
}

func (r *GormRepository) DeleteRoomType(id uint) error {
	result := r.DB.Delete(&models.RoomType{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete room type %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrRoomTypeNotFound
	}
	return nil
}

func (r *GormRepository) FindAllAddOns() ([]models.AddOn, error) {
	var addOns []models.AddOn
	if err := r.DB.Order("id ASC").Find(&addOns).Error; err != nil {
		return nil, fmt.Errorf("find all add-ons: %w", err)
	}
	return addOns, nil
}

func (r *GormRepository) FindAddOn(id uint) (models.AddOn, error) {
	var a models.AddOn
	if err := r.DB.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a, gorm.ErrRecordNotFound
		}
		return a, fmt.Errorf("find add-on %d: %w", id, err)
	}
	return a, nil
}

func (r *GormRepository) CreateAddOn(a *models.AddOn) error {
	if err := r.DB.Create(a).Error; err != nil {
		return fmt.Errorf("create add-on: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateAddOn(a *models.AddOn) error {
	result := r.DB.Model(&models.AddOn{}).Where("id = ?", a.ID).
		Select("Name", "Price", "PricingMode", "MaxQuantity", "RoomTypeID", "Active").
		Updates(a)
	if result.Error != nil {
		return fmt.Errorf("update add-on %d: %w", a.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepository) DeleteAddOn(id uint) error {
	result := r.DB.Delete(&models.AddOn{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete add-on %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
