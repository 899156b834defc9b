package services

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/media"
	"github.com/omegonstudio/fotospatagonia-backend/models"
)

type stubOrderRepo struct {
	orders   map[string]*models.Order
	earnings []models.Earning
	nextID   uint
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*models.Order), nextID: 1}
}

func (r *stubOrderRepo) Create(order *models.Order) error {
	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].ID = r.nextID
		r.nextID++
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.PublicID] = order
	return nil
}

func (r *stubOrderRepo) ListAll() ([]models.Order, error) { return nil, nil }

func (r *stubOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) GetByPublicID(publicID string) (*models.Order, error) {
	o, ok := r.orders[publicID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) UpdateStatus(orderID uint, orderStatus, paymentStatus, externalPaymentID *string) error {
	o, err := r.GetByID(orderID)
	if err != nil {
		return err
	}
	if orderStatus != nil {
		o.OrderStatus = *orderStatus
	}
	if paymentStatus != nil {
		o.PaymentStatus = *paymentStatus
	}
	if externalPaymentID != nil {
		o.ExternalPaymentID = externalPaymentID
	}
	return nil
}

func (r *stubOrderRepo) SetArchivePath(orderID uint, archivePath string) error {
	o, err := r.GetByID(orderID)
	if err != nil {
		return err
	}
	o.ArchivePath = &archivePath
	return nil
}

func (r *stubOrderRepo) CreateEarning(earning *models.Earning) error {
	r.earnings = append(r.earnings, *earning)
	return nil
}

func (r *stubOrderRepo) ListEarningsByOrder(orderID uint) ([]models.Earning, error) {
	var out []models.Earning
	for _, e := range r.earnings {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubPhotoRepo struct {
	photos map[uint]models.Photo
}

func (r *stubPhotoRepo) Create(*models.Photo) error                   { return nil }
func (r *stubPhotoRepo) ListBySession(uint) ([]models.Photo, error)   { return nil, nil }
func (r *stubPhotoRepo) Update(uint, *string, *float64, []uint) error { return nil }
func (r *stubPhotoRepo) UpdateMetadata(uint, *media.Metadata) error   { return nil }
func (r *stubPhotoRepo) Delete(uint) error                            { return nil }

func (r *stubPhotoRepo) ListByIDs(ids []uint) ([]models.Photo, error) {
	var out []models.Photo
	for _, id := range ids {
		if p, ok := r.photos[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPhotoRepo) GetByID(id uint) (*models.Photo, error) {
	p, ok := r.photos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

type stubComboRepo struct {
	active []models.Combo
}

func (r *stubComboRepo) Create(*models.Combo) error          { return nil }
func (r *stubComboRepo) ListAll() ([]models.Combo, error)    { return r.active, nil }
func (r *stubComboRepo) ListActive() ([]models.Combo, error) { return r.active, nil }
func (r *stubComboRepo) GetByID(uint) (*models.Combo, error) { return nil, gorm.ErrRecordNotFound }
func (r *stubComboRepo) Delete(uint) error                   { return nil }
func (r *stubComboRepo) Update(uint, *string, *string, *float64, *int, *bool, *bool) error {
	return nil
}

type stubDiscountRepo struct {
	byCode map[string]*models.Discount
}

func (r *stubDiscountRepo) Create(*models.Discount) error       { return nil }
func (r *stubDiscountRepo) ListAll() ([]models.Discount, error) { return nil, nil }
func (r *stubDiscountRepo) GetByID(uint) (*models.Discount, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubDiscountRepo) Update(*models.Discount) error { return nil }
func (r *stubDiscountRepo) Delete(uint) error             { return nil }

func (r *stubDiscountRepo) GetByCode(code string) (*models.Discount, error) {
	d, ok := r.byCode[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

type stubPhotographerRepo struct {
	byID map[uint]models.Photographer
}

func (r *stubPhotographerRepo) Create(*models.Photographer) error       { return nil }
func (r *stubPhotographerRepo) ListAll() ([]models.Photographer, error) { return nil, nil }
func (r *stubPhotographerRepo) Update(*models.Photographer) error       { return nil }
func (r *stubPhotographerRepo) Delete(uint) error                       { return nil }

func (r *stubPhotographerRepo) GetByID(id uint) (*models.Photographer, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

type stubMediaStore struct {
	root string
}

func (s *stubMediaStore) Save(media.AssetType, string, io.Reader) (string, error) { return "", nil }
func (s *stubMediaStore) Get(string) (io.ReadCloser, os.FileInfo, error)          { return nil, nil, nil }
func (s *stubMediaStore) Delete(string) error                                     { return nil }
func (s *stubMediaStore) EnsureDir(media.AssetType) (string, error)               { return s.root, nil }

func (s *stubMediaStore) GetFullPath(relativePath string) (string, error) {
	return filepath.Join(s.root, relativePath), nil
}

func newTestCheckout(t *testing.T) (*CheckoutService, *stubOrderRepo, string) {
	t.Helper()
	dir := t.TempDir()

	photos := &stubPhotoRepo{photos: map[uint]models.Photo{
		1: {ID: 1, Filename: "beach.jpg", Price: 100, URL: "originals/beach.jpg", PhotographerID: 1},
		2: {ID: 2, Filename: "summit.jpg", Price: 100, URL: "originals/summit.jpg", PhotographerID: 1},
		3: {ID: 3, Filename: "river.jpg", Price: 100, URL: "originals/river.jpg", PhotographerID: 2},
		4: {ID: 4, Filename: "lake.jpg", Price: 100, URL: "originals/lake.jpg", PhotographerID: 2},
	}}
	combos := &stubComboRepo{active: []models.Combo{
		{ID: 1, Name: "Trio", Price: 250, TotalPhotos: 3, Active: true},
	}}
	discounts := &stubDiscountRepo{byCode: make(map[string]*models.Discount)}
	photographers := &stubPhotographerRepo{byID: map[uint]models.Photographer{
		1: {ID: 1, Name: "Ana", CommissionPercentage: 20},
		2: {ID: 2, Name: "Bruno", CommissionPercentage: 50},
	}}

	orders := newStubOrderRepo()
	svc := NewCheckoutService(orders, photos, combos, discounts, photographers, &stubMediaStore{root: dir}, dir, 11)
	return svc, orders, dir
}

func TestCreateOrderPricesWithCombos(t *testing.T) {
	svc, _, _ := newTestCheckout(t)

	order, quote, err := svc.CreateOrder(CreateOrderInput{
		PhotoIDs:      []uint{1, 2, 3, 4},
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// 4 photos: one Trio combo (250) plus one individual at 100
	if quote.Total != 350 {
		t.Errorf("total = %.2f, want 350", quote.Total)
	}
	if order.Total != quote.Total {
		t.Errorf("order total %.2f != quote total %.2f", order.Total, quote.Total)
	}
	if len(order.Items) != 4 {
		t.Errorf("items = %d, want 4", len(order.Items))
	}
	if order.PublicID == "" {
		t.Error("order has no public id")
	}
	if order.PaymentStatus != models.PaymentStatusPending || order.OrderStatus != models.OrderStatusPending {
		t.Errorf("new order not pending: %s/%s", order.PaymentStatus, order.OrderStatus)
	}
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	svc, _, _ := newTestCheckout(t)

	_, _, err := svc.CreateOrder(CreateOrderInput{PhotoIDs: []uint{1}, PaymentMethod: "crypto"})
	if !errors.Is(err, ErrUnknownPaymentFlow) {
		t.Fatalf("err = %v, want ErrUnknownPaymentFlow", err)
	}
}

func TestCreateOrderRejectsEmptySelection(t *testing.T) {
	svc, _, _ := newTestCheckout(t)

	_, _, err := svc.CreateOrder(CreateOrderInput{PaymentMethod: models.PaymentMethodCash})
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}

func TestMarkPaidRecordsEarnings(t *testing.T) {
	svc, orders, _ := newTestCheckout(t)

	order, _, err := svc.CreateOrder(CreateOrderInput{
		PhotoIDs:      []uint{1, 3},
		PaymentMethod: models.PaymentMethodMP,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	extID := "mp-12345"
	paid, err := svc.MarkPaid(order.PublicID, &extID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if paid.PaymentStatus != models.PaymentStatusPaid || paid.OrderStatus != models.OrderStatusPaid {
		t.Errorf("order not paid: %s/%s", paid.PaymentStatus, paid.OrderStatus)
	}

	earnings, _ := orders.ListEarningsByOrder(order.ID)
	if len(earnings) != 2 {
		t.Fatalf("earnings = %d, want 2", len(earnings))
	}

	byPhotographer := make(map[uint]models.Earning)
	for _, e := range earnings {
		byPhotographer[e.PhotographerID] = e
	}

	// photographer 1: 20% commission, keeps 80 of a 100 sale
	got := byPhotographer[1]
	if math.Abs(got.Amount-80) > 1e-9 {
		t.Errorf("photographer 1 amount = %.2f, want 80", got.Amount)
	}
	if got.CommissionApplied != 20 {
		t.Errorf("photographer 1 commission = %.2f, want 20", got.CommissionApplied)
	}
	if math.Abs(got.EarnedPhotoFraction-0.8) > 1e-9 {
		t.Errorf("photographer 1 fraction = %.4f, want 0.8", got.EarnedPhotoFraction)
	}

	// photographer 2: 50% commission, keeps 50 of a 100 sale
	got = byPhotographer[2]
	if math.Abs(got.Amount-50) > 1e-9 {
		t.Errorf("photographer 2 amount = %.2f, want 50", got.Amount)
	}
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	svc, orders, _ := newTestCheckout(t)

	order, _, err := svc.CreateOrder(CreateOrderInput{
		PhotoIDs:      []uint{1},
		PaymentMethod: models.PaymentMethodMP,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.MarkPaid(order.PublicID, nil); err != nil {
		t.Fatalf("first MarkPaid: %v", err)
	}
	if _, err := svc.MarkPaid(order.PublicID, nil); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("second MarkPaid err = %v, want ErrOrderAlreadyPaid", err)
	}

	earnings, _ := orders.ListEarningsByOrder(order.ID)
	if len(earnings) != 1 {
		t.Errorf("earnings = %d, want 1 (no duplicates)", len(earnings))
	}
}

func TestBuildArchiveRequiresPaidOrder(t *testing.T) {
	svc, _, _ := newTestCheckout(t)

	order, _, err := svc.CreateOrder(CreateOrderInput{
		PhotoIDs:      []uint{1},
		PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.BuildArchive(order.PublicID); !errors.Is(err, ErrOrderNotPaid) {
		t.Fatalf("err = %v, want ErrOrderNotPaid", err)
	}
}

func TestBuildArchiveZipsOriginals(t *testing.T) {
	svc, orders, dir := newTestCheckout(t)

	if err := os.MkdirAll(filepath.Join(dir, "originals"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"beach.jpg", "summit.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, "originals", name), []byte("jpeg bytes"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	order, _, err := svc.CreateOrder(CreateOrderInput{
		PhotoIDs:      []uint{1, 2},
		PaymentMethod: models.PaymentMethodMP,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := svc.MarkPaid(order.PublicID, nil); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	archiveName, err := svc.BuildArchive(order.PublicID)
	if err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, archiveName)); err != nil {
		t.Errorf("archive not written: %v", err)
	}

	// second call returns the stored path without rebuilding
	again, err := svc.BuildArchive(order.PublicID)
	if err != nil {
		t.Fatalf("second BuildArchive: %v", err)
	}
	if again != archiveName {
		t.Errorf("second archive %q != first %q", again, archiveName)
	}

	stored, _ := orders.GetByPublicID(order.PublicID)
	if stored.ArchivePath == nil || *stored.ArchivePath != archiveName {
		t.Errorf("archive path not stored on order")
	}
}
