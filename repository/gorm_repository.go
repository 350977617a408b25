package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lodging-backend/models"
	"lodging-backend/services"
)

// GormRepository implements services.BookingRepository over MySQL. Every
// read is a plain filtered query; there is deliberately no row locking on
// units, matching the advisory-pre-check contract of the interface.
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

var activeStatusFilter = []string{models.StatusCancelled, models.StatusRejected}

func (r *GormRepository) FindActiveBookingsForUnit(roomTypeID uint, unitLabel string, excludeBookingID uint) ([]models.Booking, error) {
	var bookings []models.Booking

	q := r.DB.Model(&models.Booking{}).
		Distinct("bookings.*").
		Joins("LEFT JOIN room_allocations ra ON ra.booking_id = bookings.id AND ra.deleted_at IS NULL").
		Where("bookings.status NOT IN ?", activeStatusFilter).
		Where("(ra.room_type_id = ? AND ra.room_number = ?) OR (bookings.room_type_id = ? AND bookings.room_number = ?)",
			roomTypeID, unitLabel, roomTypeID, unitLabel)
	if excludeBookingID != 0 {
		q = q.Where("bookings.id <> ?", excludeBookingID)
	}

	if err := q.Preload("Allocations").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("find active bookings for unit %s: %w", unitLabel, err)
	}
	return bookings, nil
}

func (r *GormRepository) FindAllRoomTypes() ([]models.RoomType, error) {
	var roomTypes []models.RoomType
	if err := r.DB.Order("priority DESC, id ASC").Find(&roomTypes).Error; err != nil {
		return nil, fmt.Errorf("find room types: %w", err)
	}
	return roomTypes, nil
}

func (r *GormRepository) FindRoomType(id uint) (models.RoomType, error) {
	var rt models.RoomType
	if err := r.DB.First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rt, services.ErrRoomTypeNotFound
		}
		return rt, fmt.Errorf("find room type %d: %w", id, err)
	}
	return rt, nil
}

func (r *GormRepository) FindBooking(id uint) (models.Booking, error) {
	var b models.Booking
	err := r.DB.
		Preload("Allocations").
		Preload("Allocations.RoomType").
		Preload("AddOns").
		First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b, services.ErrBookingNotFound
		}
		return b, fmt.Errorf("find booking %d: %w", id, err)
	}
	return b, nil
}

func (r *GormRepository) FindAllBookings() ([]models.Booking, error) {
	var list []models.Booking
	err := r.DB.
		Preload("Allocations").
		Preload("Allocations.RoomType").
		Preload("AddOns").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	for i := range list {
		if list[i].Allocations == nil {
			list[i].Allocations = []models.RoomAllocation{}
		}
	}
	return list, nil
}

func (r *GormRepository) FindActiveAddOns(roomTypeID *uint) ([]models.AddOn, error) {
	var addOns []models.AddOn
	q := r.DB.Where("active = ?", true)
	if roomTypeID != nil {
		q = q.Where("room_type_id IS NULL OR room_type_id = ?", *roomTypeID)
	}
	if err := q.Order("id ASC").Find(&addOns).Error; err != nil {
		return nil, fmt.Errorf("find add-ons: %w", err)
	}
	return addOns, nil
}

// SaveBooking upserts the booking and replaces its allocations and add-on
// snapshots wholesale inside one transaction, so an edit is a single
// logical write.
func (r *GormRepository) SaveBooking(b *models.Booking, allocations []models.RoomAllocation, addOns []models.BookingAddOn) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if b.ID == 0 {
			if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
				return fmt.Errorf("create booking: %w", err)
			}
		} else {
			// Never rewrite created_at on an edit, even if the caller
			// passed a zero value.
			if err := tx.Omit(clause.Associations, "created_at").Save(b).Error; err != nil {
				return fmt.Errorf("update booking %d: %w", b.ID, err)
			}
		}

		if err := tx.Where("booking_id = ?", b.ID).Delete(&models.RoomAllocation{}).Error; err != nil {
			return fmt.Errorf("clear allocations for booking %d: %w", b.ID, err)
		}
		for i := range allocations {
			allocations[i].ID = 0
			allocations[i].BookingID = b.ID
			if err := tx.Create(&allocations[i]).Error; err != nil {
				return fmt.Errorf("create allocation for room %s: %w", allocations[i].RoomNumber, err)
			}
		}

		if err := tx.Where("booking_id = ?", b.ID).Delete(&models.BookingAddOn{}).Error; err != nil {
			return fmt.Errorf("clear add-ons for booking %d: %w", b.ID, err)
		}
		for i := range addOns {
			addOns[i].ID = 0
			addOns[i].BookingID = b.ID
			if err := tx.Create(&addOns[i]).Error; err != nil {
				return fmt.Errorf("create booking add-on %s: %w", addOns[i].Name, err)
			}
		}

		b.Allocations = allocations
		b.AddOns = addOns
		return nil
	})
}

func (r *GormRepository) UpdateBookingStatus(id uint, status string) error {
	result := r.DB.Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update booking %d status: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return services.ErrBookingNotFound
	}
	return nil
}

// DeleteBooking hard-deletes the booking and its owned rows.
func (r *GormRepository) DeleteBooking(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("booking_id = ?", id).Delete(&models.RoomAllocation{}).Error; err != nil {
			return fmt.Errorf("delete allocations for booking %d: %w", id, err)
		}
		if err := tx.Unscoped().Where("booking_id = ?", id).Delete(&models.BookingAddOn{}).Error; err != nil {
			return fmt.Errorf("delete add-ons for booking %d: %w", id, err)
		}
		result := tx.Unscoped().Delete(&models.Booking{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete booking %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return services.ErrBookingNotFound
		}
		return nil
	})
}

var _ services.BookingRepository = (*GormRepository)(nil)
