package repository

import (
	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// ComboRepositoryInterface defines the methods for combo catalog operations
type ComboRepositoryInterface interface {
	Create(combo *models.Combo) error
	ListAll() ([]models.Combo, error)
	ListActive() ([]models.Combo, error)
	GetByID(id uint) (*models.Combo, error)
	Update(comboID uint, name *string, description *string, price *float64, totalPhotos *int, isFullAlbum *bool, active *bool) error
	Delete(id uint) error
}

// AlbumRepositoryInterface defines the methods for album data operations
type AlbumRepositoryInterface interface {
	Create(album *models.Album) error
	ListAll() ([]models.Album, error)
	GetByID(id uint) (*models.Album, error)
	Update(albumID uint, name *string, description *string, tagIDs []uint) error
	Delete(id uint) error
	PhotoCount(albumID uint) (int64, error)
	ListPhotos(albumID uint) ([]models.Photo, error)
}

// SessionRepositoryInterface defines the methods for photo session operations
type SessionRepositoryInterface interface {
	Create(session *models.PhotoSession) error
	ListAll() ([]models.PhotoSession, error)
	GetByID(id uint) (*models.PhotoSession, error)
	Update(session *models.PhotoSession) error
	Delete(id uint) error
}

// PhotoRepositoryInterface defines the methods for photo data operations
type PhotoRepositoryInterface interface {
	Create(photo *models.Photo) error
	ListBySession(sessionID uint) ([]models.Photo, error)
	ListByIDs(ids []uint) ([]models.Photo, error)
	GetByID(id uint) (*models.Photo, error)
	Update(photoID uint, description *string, price *float64, tagIDs []uint) error
	UpdateMetadata(photoID uint, meta *media.Metadata) error
	Delete(id uint) error
}

// PhotographerRepositoryInterface defines the methods for photographer operations
type PhotographerRepositoryInterface interface {
	Create(photographer *models.Photographer) error
	ListAll() ([]models.Photographer, error)
	GetByID(id uint) (*models.Photographer, error)
	Update(photographer *models.Photographer) error
	Delete(id uint) error
}

// TagRepositoryInterface defines the methods for tag operations
type TagRepositoryInterface interface {
	Create(tag *models.Tag) error
	ListAll() ([]models.Tag, error)
	GetByID(id uint) (*models.Tag, error)
	Update(tagID uint, name string) error
	Delete(id uint) error
}

// DiscountRepositoryInterface defines the methods for discount code operations
type DiscountRepositoryInterface interface {
	Create(discount *models.Discount) error
	ListAll() ([]models.Discount, error)
	GetByID(id uint) (*models.Discount, error)
	GetByCode(code string) (*models.Discount, error)
	Update(discount *models.Discount) error
	Delete(id uint) error
}

// OrderRepositoryInterface defines the methods for order operations
type OrderRepositoryInterface interface {
	Create(order *models.Order) error
	ListAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByPublicID(publicID string) (*models.Order, error)
	UpdateStatus(orderID uint, orderStatus *string, paymentStatus *string, externalPaymentID *string) error
	SetArchivePath(orderID uint, archivePath string) error
	CreateEarning(earning *models.Earning) error
	ListEarningsByOrder(orderID uint) ([]models.Earning, error)
}

// CartRepositoryInterface defines the methods for cart persistence.
// Business rules (quantity merging, guest-to-user transfer) live in
// services.CartService.
type CartRepositoryInterface interface {
	Create(cart *models.Cart) error
	GetByID(id uint) (*models.Cart, error)
	GetByUserID(userID uint) (*models.Cart, error)
	GetByGuestID(guestID string) (*models.Cart, error)
	SetDetails(cartID uint, userEmail *string, discountCode *string, photoSessionID *uint) error
	Delete(cartID uint) error

	FindItemByPhoto(cartID, photoID uint) (*models.CartItem, error)
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	MoveItem(itemID, cartID uint) error
	DeleteItem(itemID uint) error
	DeleteItems(cartID uint) error
}

// SavedCartRepositoryInterface defines the methods for saved cart
// snapshot operations
type SavedCartRepositoryInterface interface {
	Create(saved *models.SavedCart) error
	ListAll() ([]models.SavedCart, error)
	GetByPublicID(publicID string) (*models.SavedCart, error)
	Delete(id uint) error
}

// RoleRepositoryInterface defines the methods for role data operations
type RoleRepositoryInterface interface {
	Create(role *models.Role) error
	ListAll() ([]models.Role, error)
	GetByID(id uint) (*models.Role, error)
	GetByName(name string) (*models.Role, error)
	Update(roleID uint, name *string, description *string, globalPermissions *[]string) error
	Delete(id uint) error

	AddUserToRole(userID, roleID uint) error
	RemoveUserFromRole(userID, roleID uint) error
	FindUsersByRoleID(roleID uint) ([]models.User, error)
}

// UserRepositoryInterface defines the methods for user operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}
