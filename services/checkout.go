package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/pricing"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
	"github.com/omegonstudio/fotospatagonia-backend/utils"
)

var (
	ErrEmptySelection     = errors.New("order has no photos")
	ErrDiscountNotValid   = errors.New("discount code is not redeemable")
	ErrOrderAlreadyPaid   = errors.New("order is already paid")
	ErrOrderNotPaid       = errors.New("order is not paid")
	ErrUnknownPaymentFlow = errors.New("unknown payment method")
)

// CheckoutService creates orders from photo selections, prices them with
// the combo resolver and records photographer earnings when an order is
// paid.
type CheckoutService struct {
	orderRepo    repository.OrderRepositoryInterface
	photoRepo    repository.PhotoRepositoryInterface
	comboRepo    repository.ComboRepositoryInterface
	discountRepo repository.DiscountRepositoryInterface
	photogRepo   repository.PhotographerRepositoryInterface
	store        media.Store
	archivesPath string
	fullAlbumMin int
}

func NewCheckoutService(
	orderRepo repository.OrderRepositoryInterface,
	photoRepo repository.PhotoRepositoryInterface,
	comboRepo repository.ComboRepositoryInterface,
	discountRepo repository.DiscountRepositoryInterface,
	photogRepo repository.PhotographerRepositoryInterface,
	store media.Store,
	archivesPath string,
	fullAlbumMin int,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:    orderRepo,
		photoRepo:    photoRepo,
		comboRepo:    comboRepo,
		discountRepo: discountRepo,
		photogRepo:   photogRepo,
		store:        store,
		archivesPath: archivesPath,
		fullAlbumMin: fullAlbumMin,
	}
}

// CreateOrderInput is a checkout request: the selected photos plus
// customer identification.
type CreateOrderInput struct {
	PhotoIDs      []uint
	PaymentMethod string
	DiscountCode  *string
	UserID        *uint
	GuestID       *string
	CustomerEmail *string
}

// CreateOrder prices the selection and persists a pending order. The
// returned order carries its items and the applied discount.
func (s *CheckoutService) CreateOrder(in CreateOrderInput) (*models.Order, *pricing.Quote, error) {
	if len(in.PhotoIDs) == 0 {
		return nil, nil, ErrEmptySelection
	}
	switch in.PaymentMethod {
	case models.PaymentMethodMP, models.PaymentMethodCash, models.PaymentMethodBankTransfer, models.PaymentMethodPointOfSale:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPaymentFlow, in.PaymentMethod)
	}

	photos, err := s.photoRepo.ListByIDs(in.PhotoIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load photos: %w", err)
	}
	if len(photos) != len(in.PhotoIDs) {
		return nil, nil, fmt.Errorf("%w: %d of %d photos found", gorm.ErrRecordNotFound, len(photos), len(in.PhotoIDs))
	}

	var discount *models.Discount
	if in.DiscountCode != nil && *in.DiscountCode != "" {
		discount, err = s.discountRepo.GetByCode(*in.DiscountCode)
		if err != nil {
			return nil, nil, err
		}
		if !discount.IsRedeemable(time.Now()) {
			return nil, nil, ErrDiscountNotValid
		}
	}

	quote, err := s.QuoteSelection(photos, discount)
	if err != nil {
		return nil, nil, err
	}

	publicID, err := uuid.NewRandom()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	order := &models.Order{
		PublicID:      publicID.String(),
		UserID:        in.UserID,
		GuestID:       in.GuestID,
		CustomerEmail: in.CustomerEmail,
		Total:         quote.Total,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusPending,
	}
	if discount != nil {
		order.DiscountID = &discount.ID
	}
	for _, photo := range photos {
		order.Items = append(order.Items, models.OrderItem{
			PhotoID:  photo.ID,
			Price:    photo.Price,
			Quantity: 1,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}
	log.Printf("checkout: created order %s (%d photos, total %.2f)", order.PublicID, len(photos), order.Total)
	return order, quote, nil
}

// QuoteSelection prices a set of photos against the active combo
// catalog. The unit price is the highest individual photo price in the
// selection so a combo never undercuts what the customer would save.
func (s *CheckoutService) QuoteSelection(photos []models.Photo, discount *models.Discount) (*pricing.Quote, error) {
	combos, err := s.comboRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load combo catalog: %w", err)
	}

	unitPrice := 0.0
	for _, p := range photos {
		if p.Price > unitPrice {
			unitPrice = p.Price
		}
	}

	in := pricing.QuoteInput{
		PhotoCount:         len(photos),
		UnitPrice:          unitPrice,
		Combos:             pricing.FromModels(combos),
		FullAlbumMinPhotos: s.fullAlbumMin,
	}
	if discount != nil {
		in.Discount = &pricing.Discount{
			Code:       discount.Code,
			Percentage: discount.Percentage,
			Value:      discount.Value,
		}
	}

	quote := pricing.BuildQuote(in)
	return &quote, nil
}

// MarkPaid transitions an order to paid and records one earning per
// order item. Idempotent: a second call on a paid order returns
// ErrOrderAlreadyPaid without writing duplicate earnings.
func (s *CheckoutService) MarkPaid(publicID string, externalPaymentID *string) (*models.Order, error) {
	order, err := s.orderRepo.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		return order, ErrOrderAlreadyPaid
	}

	paymentStatus := models.PaymentStatusPaid
	orderStatus := models.OrderStatusPaid
	if err := s.orderRepo.UpdateStatus(order.ID, &orderStatus, &paymentStatus, externalPaymentID); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.recordEarnings(order); err != nil {
		// the order stays paid; earnings can be backfilled from the items
		log.Printf("checkout: ERROR recording earnings for order %s: %v", order.PublicID, err)
	}

	order.PaymentStatus = paymentStatus
	order.OrderStatus = orderStatus
	order.ExternalPaymentID = externalPaymentID
	log.Printf("checkout: order %s marked paid", order.PublicID)
	return order, nil
}

// recordEarnings writes one earning row per item. The photographer keeps
// (100 - commission)% of each line.
func (s *CheckoutService) recordEarnings(order *models.Order) error {
	// cache commission lookups; batches usually come from one photographer
	commissions := make(map[uint]float64)

	for _, item := range order.Items {
		photo := item.Photo
		if photo == nil {
			loaded, err := s.photoRepo.GetByID(item.PhotoID)
			if err != nil {
				return fmt.Errorf("failed to load photo %d: %w", item.PhotoID, err)
			}
			photo = loaded
		}

		commission, ok := commissions[photo.PhotographerID]
		if !ok {
			photographer, err := s.photogRepo.GetByID(photo.PhotographerID)
			if err != nil {
				return fmt.Errorf("failed to load photographer %d: %w", photo.PhotographerID, err)
			}
			commission = photographer.CommissionPercentage
			commissions[photo.PhotographerID] = commission
		}

		fraction := 1.0 - commission/100.0
		earning := &models.Earning{
			PhotographerID:      photo.PhotographerID,
			OrderID:             order.ID,
			OrderItemID:         item.ID,
			Amount:              item.Price * float64(item.Quantity) * fraction,
			CommissionApplied:   commission,
			EarnedPhotoFraction: fraction * float64(item.Quantity),
		}
		if err := s.orderRepo.CreateEarning(earning); err != nil {
			return fmt.Errorf("failed to record earning for item %d: %w", item.ID, err)
		}
	}
	return nil
}

// BuildArchive zips the original files of a paid order and stores the
// archive path on the order. Returns the existing path when the archive
// was already built.
func (s *CheckoutService) BuildArchive(publicID string) (string, error) {
	order, err := s.orderRepo.GetByPublicID(publicID)
	if err != nil {
		return "", err
	}
	if order.PaymentStatus != models.PaymentStatusPaid {
		return "", ErrOrderNotPaid
	}
	if order.ArchivePath != nil && *order.ArchivePath != "" {
		return *order.ArchivePath, nil
	}

	files := make(map[string]string, len(order.Items))
	for _, item := range order.Items {
		photo := item.Photo
		if photo == nil {
			loaded, loadErr := s.photoRepo.GetByID(item.PhotoID)
			if loadErr != nil {
				return "", fmt.Errorf("failed to load photo %d: %w", item.PhotoID, loadErr)
			}
			photo = loaded
		}
		fullPath, pathErr := s.store.GetFullPath(photo.URL)
		if pathErr != nil {
			return "", fmt.Errorf("failed to resolve photo %d: %w", photo.ID, pathErr)
		}
		// prefix with the photo id so repeated filenames cannot collide
		entryName := fmt.Sprintf("%d_%s", photo.ID, utils.SanitizeFilename(photo.Filename))
		files[entryName] = fullPath
	}

	archiveName, size, err := utils.CreateOrderArchive(files, s.archivesPath)
	if err != nil {
		return "", fmt.Errorf("failed to build order archive: %w", err)
	}
	log.Printf("checkout: archived order %s (%d files, %d bytes)", order.PublicID, len(files), size)

	if err := s.orderRepo.SetArchivePath(order.ID, archiveName); err != nil {
		return "", fmt.Errorf("failed to store archive path: %w", err)
	}
	return archiveName, nil
}
