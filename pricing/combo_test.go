package pricing

import "testing"

func conservation(t *testing.T, photoCount int, res AutoComboResult) {
	t.Helper()
	covered := 0
	for _, a := range res.Applied {
		covered += a.Count * a.Combo.TotalPhotos
	}
	if covered+res.RemainingPhotos != photoCount {
		t.Errorf("conservation violated: covered %d + remaining %d != photoCount %d",
			covered, res.RemainingPhotos, photoCount)
	}
}

func TestResolveAutoCombosBelowThreshold(t *testing.T) {
	combos := []Combo{{ID: 1, TotalPhotos: 3, Price: 350}}

	for _, count := range []int{0, 1, 2} {
		res := ResolveAutoCombos(count, combos)
		if len(res.Applied) != 0 {
			t.Errorf("photoCount=%d: expected no applied combos, got %d", count, len(res.Applied))
		}
		if res.RemainingPhotos != count {
			t.Errorf("photoCount=%d: expected remaining %d, got %d", count, count, res.RemainingPhotos)
		}
		if res.TotalComboPrice != 0 {
			t.Errorf("photoCount=%d: expected zero combo price, got %v", count, res.TotalComboPrice)
		}
		conservation(t, count, res)
	}
}

func TestResolveAutoCombosEmptyCatalog(t *testing.T) {
	res := ResolveAutoCombos(10, nil)
	if len(res.Applied) != 0 || res.RemainingPhotos != 10 || res.TotalComboPrice != 0 {
		t.Errorf("expected trivial result for empty catalog, got %+v", res)
	}
}

func TestResolveAutoCombosGreedyLargestFirst(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 7, Price: 700},
		{ID: 2, TotalPhotos: 5, Price: 550},
		{ID: 3, TotalPhotos: 3, Price: 350},
	}

	res := ResolveAutoCombos(10, combos)
	conservation(t, 10, res)

	if len(res.Applied) != 2 {
		t.Fatalf("expected 2 applied combos, got %d: %+v", len(res.Applied), res.Applied)
	}
	if res.Applied[0].Combo.TotalPhotos != 7 || res.Applied[0].Count != 1 {
		t.Errorf("expected one 7-bundle first, got %+v", res.Applied[0])
	}
	if res.Applied[1].Combo.TotalPhotos != 3 || res.Applied[1].Count != 1 {
		t.Errorf("expected one 3-bundle second, got %+v", res.Applied[1])
	}
	if res.RemainingPhotos != 0 {
		t.Errorf("expected no remaining photos, got %d", res.RemainingPhotos)
	}
	if res.TotalComboPrice != 1050 {
		t.Errorf("expected combo price 1050, got %v", res.TotalComboPrice)
	}
}

func TestResolveAutoCombosNoComboFits(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 5, Price: 550},
		{ID: 2, TotalPhotos: 7, Price: 700},
	}

	res := ResolveAutoCombos(4, combos)
	conservation(t, 4, res)

	if len(res.Applied) != 0 {
		t.Errorf("expected no applied combos, got %+v", res.Applied)
	}
	if res.RemainingPhotos != 4 {
		t.Errorf("expected remaining 4, got %d", res.RemainingPhotos)
	}
	if res.TotalComboPrice != 0 {
		t.Errorf("expected zero combo price, got %v", res.TotalComboPrice)
	}
}

func TestResolveAutoCombosRepeatedBundles(t *testing.T) {
	combos := []Combo{{ID: 1, TotalPhotos: 5, Price: 500}}

	res := ResolveAutoCombos(17, combos)
	conservation(t, 17, res)

	if len(res.Applied) != 1 || res.Applied[0].Count != 3 {
		t.Fatalf("expected three 5-bundles, got %+v", res.Applied)
	}
	if res.RemainingPhotos != 2 {
		t.Errorf("expected remaining 2, got %d", res.RemainingPhotos)
	}
	if res.TotalComboPrice != 1500 {
		t.Errorf("expected combo price 1500, got %v", res.TotalComboPrice)
	}
}

func TestResolveAutoCombosSkipsDegenerateBundles(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 0, Price: 100},
		{ID: 2, TotalPhotos: -3, Price: 100},
		{ID: 3, TotalPhotos: 4, Price: 400},
	}

	res := ResolveAutoCombos(9, combos)
	conservation(t, 9, res)

	if len(res.Applied) != 1 || res.Applied[0].Combo.ID != 3 {
		t.Fatalf("expected only the 4-bundle to match, got %+v", res.Applied)
	}
	if res.Applied[0].Count != 2 || res.RemainingPhotos != 1 {
		t.Errorf("expected two 4-bundles and remaining 1, got count=%d remaining=%d",
			res.Applied[0].Count, res.RemainingPhotos)
	}
}

func TestResolveAutoCombosStableTieBreak(t *testing.T) {
	// identical bundle sizes keep catalog order
	combos := []Combo{
		{ID: 9, TotalPhotos: 5, Price: 500},
		{ID: 4, TotalPhotos: 5, Price: 450},
	}

	res := ResolveAutoCombos(5, combos)
	if len(res.Applied) != 1 || res.Applied[0].Combo.ID != 9 {
		t.Errorf("expected first catalog entry to win the tie, got %+v", res.Applied)
	}
}

func TestFullAlbumOverride(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 0, Price: 5000, IsFullAlbum: true, Active: true},
		{ID: 2, TotalPhotos: 5, Price: 500, Active: true},
	}

	res := ResolveAutoCombosWithFullAlbum(12, combos, 11)
	if !res.IsFullAlbum {
		t.Fatal("expected full-album result")
	}
	if len(res.Applied) != 1 || res.Applied[0].Combo.ID != 1 || res.Applied[0].Count != 1 {
		t.Errorf("expected single full-album application, got %+v", res.Applied)
	}
	if res.RemainingPhotos != 0 {
		t.Errorf("expected no remaining photos, got %d", res.RemainingPhotos)
	}
	if res.TotalComboPrice != 5000 {
		t.Errorf("expected total 5000, got %v", res.TotalComboPrice)
	}
}

func TestFullAlbumBelowMinimum(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 0, Price: 5000, IsFullAlbum: true, Active: true},
		{ID: 2, TotalPhotos: 5, Price: 500, Active: true},
	}

	res := ResolveAutoCombosWithFullAlbum(10, combos, 11)
	if res.IsFullAlbum {
		t.Fatal("expected quantity-combo result below the full-album minimum")
	}
	if len(res.Applied) != 1 || res.Applied[0].Combo.ID != 2 || res.Applied[0].Count != 2 {
		t.Errorf("expected two 5-bundles, got %+v", res.Applied)
	}
	if res.RemainingPhotos != 0 || res.TotalComboPrice != 1000 {
		t.Errorf("expected remaining 0 and total 1000, got remaining=%d total=%v",
			res.RemainingPhotos, res.TotalComboPrice)
	}
}

func TestFullAlbumIgnoresInactive(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 0, Price: 5000, IsFullAlbum: true, Active: false},
		{ID: 2, TotalPhotos: 5, Price: 500, Active: true},
	}

	res := ResolveAutoCombosWithFullAlbum(12, combos, 11)
	if res.IsFullAlbum {
		t.Error("inactive full-album combo must not apply")
	}
}

func TestFullAlbumLowestIDWins(t *testing.T) {
	combos := []Combo{
		{ID: 7, TotalPhotos: 0, Price: 7000, IsFullAlbum: true, Active: true},
		{ID: 3, TotalPhotos: 0, Price: 3000, IsFullAlbum: true, Active: true},
	}

	res := ResolveAutoCombosWithFullAlbum(20, combos, 11)
	if !res.IsFullAlbum || len(res.Applied) != 1 {
		t.Fatalf("expected full-album result, got %+v", res)
	}
	if res.Applied[0].Combo.ID != 3 {
		t.Errorf("expected lowest-ID full-album combo, got ID %d", res.Applied[0].Combo.ID)
	}
	if res.TotalComboPrice != 3000 {
		t.Errorf("expected price of the chosen combo, got %v", res.TotalComboPrice)
	}
}

func TestFullAlbumDefaultMinimum(t *testing.T) {
	combos := []Combo{
		{ID: 1, TotalPhotos: 0, Price: 5000, IsFullAlbum: true, Active: true},
	}

	// 0 falls back to the default of 11
	if res := ResolveAutoCombosWithFullAlbum(11, combos, 0); !res.IsFullAlbum {
		t.Error("expected default minimum of 11 to trigger the override")
	}
	if res := ResolveAutoCombosWithFullAlbum(10, combos, 0); res.IsFullAlbum {
		t.Error("expected 10 photos to stay below the default minimum")
	}
}

func TestConservationAcrossCatalogs(t *testing.T) {
	catalog := []Combo{
		{ID: 1, TotalPhotos: 10, Price: 900, Active: true},
		{ID: 2, TotalPhotos: 7, Price: 700, Active: true},
		{ID: 3, TotalPhotos: 5, Price: 550, Active: true},
		{ID: 4, TotalPhotos: 3, Price: 350, Active: true},
	}

	for photoCount := 0; photoCount <= 60; photoCount++ {
		res := ResolveAutoCombos(photoCount, catalog)
		conservation(t, photoCount, res)
		if res.RemainingPhotos < 0 {
			t.Errorf("photoCount=%d: negative remaining %d", photoCount, res.RemainingPhotos)
		}
		if res.TotalComboPrice < 0 {
			t.Errorf("photoCount=%d: negative total %v", photoCount, res.TotalComboPrice)
		}
	}
}
