package pricing

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestBuildQuoteCombosPlusIndividuals(t *testing.T) {
	quote := BuildQuote(QuoteInput{
		PhotoCount: 8,
		UnitPrice:  150,
		Combos: []Combo{
			{ID: 1, TotalPhotos: 5, Price: 500, Active: true},
		},
	})

	if quote.Combos.TotalComboPrice != 500 {
		t.Errorf("expected combo total 500, got %v", quote.Combos.TotalComboPrice)
	}
	if quote.IndividualTotal != 450 {
		t.Errorf("expected 3 individual photos at 150, got %v", quote.IndividualTotal)
	}
	if quote.Subtotal != 950 || quote.Total != 950 {
		t.Errorf("expected subtotal and total 950, got %v / %v", quote.Subtotal, quote.Total)
	}
}

func TestBuildQuotePercentageDiscount(t *testing.T) {
	quote := BuildQuote(QuoteInput{
		PhotoCount: 5,
		UnitPrice:  100,
		Combos:     []Combo{{ID: 1, TotalPhotos: 5, Price: 400, Active: true}},
		Discount:   &Discount{Code: "VERANO10", Percentage: floatPtr(10)},
	})

	if quote.DiscountAmount != 40 {
		t.Errorf("expected 10%% of 400, got %v", quote.DiscountAmount)
	}
	if quote.Total != 360 {
		t.Errorf("expected total 360, got %v", quote.Total)
	}
}

func TestBuildQuoteValueDiscountClamped(t *testing.T) {
	quote := BuildQuote(QuoteInput{
		PhotoCount: 2,
		UnitPrice:  100,
		Discount:   &Discount{Code: "GIFT", Value: floatPtr(500)},
	})

	// subtotal is 200 (below combo threshold, no combos apply);
	// the discount must not push the total negative
	if quote.Subtotal != 200 {
		t.Fatalf("expected subtotal 200, got %v", quote.Subtotal)
	}
	if quote.DiscountAmount != 200 || quote.Total != 0 {
		t.Errorf("expected discount clamped to 200 and total 0, got %v / %v",
			quote.DiscountAmount, quote.Total)
	}
}

func TestBuildQuoteFullAlbumShortCircuit(t *testing.T) {
	quote := BuildQuote(QuoteInput{
		PhotoCount: 15,
		UnitPrice:  100,
		Combos: []Combo{
			{ID: 1, TotalPhotos: 0, Price: 5000, IsFullAlbum: true, Active: true},
			{ID: 2, TotalPhotos: 5, Price: 500, Active: true},
		},
	})

	if !quote.Combos.IsFullAlbum {
		t.Fatal("expected full-album pricing")
	}
	if quote.IndividualTotal != 0 {
		t.Errorf("full album leaves no individual photos, got %v", quote.IndividualTotal)
	}
	if quote.Total != 5000 {
		t.Errorf("expected total 5000, got %v", quote.Total)
	}
}
