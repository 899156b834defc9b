package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// OrderRepository handles database operations for Order entities
type OrderRepository struct {
	DB *gorm.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Create persists the order and its items in one transaction
func (r *OrderRepository) Create(order *models.Order) error {
	err := r.DB.Create(order).Error
	if err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.PublicID, err)
	}
	return nil
}

// ListAll retrieves all orders with items and discount, newest first
func (r *OrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.Preload("Items").Preload("Items.Photo").Preload("Discount").
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order by its internal ID
func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.Preload("Items").Preload("Items.Photo").Preload("Items.Photo.Photographer").
		Preload("Discount").First(&order, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByPublicID retrieves an order by the identifier exposed on
// customer-facing URLs
func (r *OrderRepository) GetByPublicID(publicID string) (*models.Order, error) {
	var order models.Order
	err := r.DB.Preload("Items").Preload("Items.Photo").Preload("Discount").
		Where("public_id = ?", publicID).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order by public ID %s: %w", publicID, err)
	}
	return &order, nil
}

// UpdateStatus applies the non-nil status fields to an order
func (r *OrderRepository) UpdateStatus(orderID uint, orderStatus *string, paymentStatus *string, externalPaymentID *string) error {
	updates := map[string]interface{}{}
	if orderStatus != nil {
		updates["order_status"] = *orderStatus
	}
	if paymentStatus != nil {
		updates["payment_status"] = *paymentStatus
	}
	if externalPaymentID != nil {
		updates["external_payment_id"] = *externalPaymentID
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.DB.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update status for order ID %d: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.Order{}).Where("id = ?", orderID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// SetArchivePath records where the download zip for the order lives
func (r *OrderRepository) SetArchivePath(orderID uint, archivePath string) error {
	result := r.DB.Model(&models.Order{}).Where("id = ?", orderID).Update("archive_path", archivePath)
	if result.Error != nil {
		return fmt.Errorf("failed to set archive path for order ID %d: %w", orderID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateEarning records one photographer earning row
func (r *OrderRepository) CreateEarning(earning *models.Earning) error {
	err := r.DB.Create(earning).Error
	if err != nil {
		return fmt.Errorf("failed to create earning for order item %d: %w", earning.OrderItemID, err)
	}
	return nil
}

// ListEarningsByOrder retrieves the earnings recorded for one order
func (r *OrderRepository) ListEarningsByOrder(orderID uint) ([]models.Earning, error) {
	var earnings []models.Earning
	err := r.DB.Where("order_id = ?", orderID).Find(&earnings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list earnings for order ID %d: %w", orderID, err)
	}
	return earnings, nil
}
