package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/omegonstudio/fotospatagonia-backend/pricing"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

// PricingHandler exposes the combo resolver as a storefront quote
// endpoint so the cart can show totals before checkout.
type PricingHandler struct {
	ComboRepo          repository.ComboRepositoryInterface
	PhotoRepo          repository.PhotoRepositoryInterface
	DiscountRepo       repository.DiscountRepositoryInterface
	FullAlbumMinPhotos int
}

func NewPricingHandler(comboRepo repository.ComboRepositoryInterface, photoRepo repository.PhotoRepositoryInterface, discountRepo repository.DiscountRepositoryInterface, fullAlbumMinPhotos int) *PricingHandler {
	return &PricingHandler{
		ComboRepo:          comboRepo,
		PhotoRepo:          photoRepo,
		DiscountRepo:       discountRepo,
		FullAlbumMinPhotos: fullAlbumMinPhotos,
	}
}

type quotePayload struct {
	// either a concrete selection or an abstract count
	PhotoIDs     []uint   `json:"photo_ids,omitempty"`
	PhotoCount   int      `json:"photo_count,omitempty"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	DiscountCode *string  `json:"discount_code,omitempty"`
}

func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var payload quotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	photoCount := payload.PhotoCount
	unitPrice := 0.0
	if payload.UnitPrice != nil {
		unitPrice = *payload.UnitPrice
	}

	if len(payload.PhotoIDs) > 0 {
		photos, err := h.PhotoRepo.ListByIDs(payload.PhotoIDs)
		if err != nil {
			log.Printf("Error loading photos for quote: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "quote_failed", "failed to load photos")
			return
		}
		if len(photos) != len(payload.PhotoIDs) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "one or more photos not found")
			return
		}
		photoCount = len(photos)
		for _, p := range photos {
			if p.Price > unitPrice {
				unitPrice = p.Price
			}
		}
	}

	if photoCount < 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_count", "photo_count cannot be negative")
		return
	}

	combos, err := h.ComboRepo.ListActive()
	if err != nil {
		log.Printf("Error loading combo catalog for quote: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "quote_failed", "failed to load combo catalog")
		return
	}

	in := pricing.QuoteInput{
		PhotoCount:         photoCount,
		UnitPrice:          unitPrice,
		Combos:             pricing.FromModels(combos),
		FullAlbumMinPhotos: h.FullAlbumMinPhotos,
	}

	if payload.DiscountCode != nil && *payload.DiscountCode != "" {
		discount, err := h.DiscountRepo.GetByCode(*payload.DiscountCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				WriteAPIError(w, http.StatusNotFound, "not_found", "discount code not found")
				return
			}
			log.Printf("Error loading discount for quote: %v", err)
			WriteAPIError(w, http.StatusInternalServerError, "quote_failed", "failed to load discount")
			return
		}
		if !discount.IsRedeemable(time.Now()) {
			WriteAPIError(w, http.StatusGone, "not_redeemable", "discount code is expired or inactive")
			return
		}
		in.Discount = &pricing.Discount{
			Code:       discount.Code,
			Percentage: discount.Percentage,
			Value:      discount.Value,
		}
	}

	writeJSON(w, http.StatusOK, pricing.BuildQuote(in))
}
