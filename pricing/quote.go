package pricing

// Discount is the pricing view of a redeemable checkout code. One of
// Percentage or Value is expected to be set.
type Discount struct {
	Code       string   `json:"code"`
	Percentage *float64 `json:"percentage,omitempty"`
	Value      *float64 `json:"value,omitempty"`
}

// QuoteInput carries everything needed to price one selection.
type QuoteInput struct {
	PhotoCount         int
	UnitPrice          float64 // individual price for photos not covered by a combo
	Combos             []Combo
	FullAlbumMinPhotos int // <= 0 means DefaultFullAlbumMinPhotos
	Discount           *Discount
}

// Quote is a fully priced selection.
type Quote struct {
	Combos          AutoComboResult `json:"combos"`
	IndividualTotal float64         `json:"individual_total"`
	Subtotal        float64         `json:"subtotal"`
	DiscountAmount  float64         `json:"discount_amount"`
	Total           float64         `json:"total"`
}

// BuildQuote resolves combos for the selection and applies the discount
// to the subtotal. A discount never pushes the total below zero.
func BuildQuote(in QuoteInput) Quote {
	combos := ResolveAutoCombosWithFullAlbum(in.PhotoCount, in.Combos, in.FullAlbumMinPhotos)

	individual := float64(combos.RemainingPhotos) * in.UnitPrice
	subtotal := combos.TotalComboPrice + individual

	discount := 0.0
	if in.Discount != nil {
		switch {
		case in.Discount.Percentage != nil:
			discount = subtotal * (*in.Discount.Percentage / 100.0)
		case in.Discount.Value != nil:
			discount = *in.Discount.Value
		}
		if discount > subtotal {
			discount = subtotal
		}
		if discount < 0 {
			discount = 0
		}
	}

	return Quote{
		Combos:          combos,
		IndividualTotal: individual,
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		Total:           subtotal - discount,
	}
}
