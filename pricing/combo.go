package pricing

import (
	"sort"

	"github.com/omegonstudio/fotospatagonia-backend/models"
)

// Combo is the pricing view of a catalog combo. It is mapped from
// models.Combo at the call boundary so the resolver stays independent of
// the persistence layer.
type Combo struct {
	ID          uint    `json:"id"`
	TotalPhotos int     `json:"total_photos"`
	Price       float64 `json:"price"`
	IsFullAlbum bool    `json:"is_full_album"`
	Active      bool    `json:"active"`
}

// AppliedCombo is a resolved decision to purchase Count instances of a
// combo.
type AppliedCombo struct {
	Combo Combo `json:"combo"`
	Count int   `json:"count"`
}

// AutoComboResult is the decomposition of a photo selection into combo
// bundles plus individually priced leftovers. It is computed fresh per
// request and never persisted.
type AutoComboResult struct {
	Applied         []AppliedCombo `json:"applied"`
	RemainingPhotos int            `json:"remaining_photos"`
	TotalComboPrice float64        `json:"total_combo_price"`
	IsFullAlbum     bool           `json:"is_full_album"`
}

// minComboPhotos is the smallest selection worth evaluating against the
// catalog; no bundle below three photos is sold.
const minComboPhotos = 3

// DefaultFullAlbumMinPhotos is the selection size at which a full-album
// combo takes over from quantity bundles.
const DefaultFullAlbumMinPhotos = 11

// FromModel converts a catalog row into its pricing view.
func FromModel(c models.Combo) Combo {
	return Combo{
		ID:          c.ID,
		TotalPhotos: c.TotalPhotos,
		Price:       c.Price,
		IsFullAlbum: c.IsFullAlbum,
		Active:      c.Active,
	}
}

// FromModels converts a catalog slice, preserving order.
func FromModels(combos []models.Combo) []Combo {
	out := make([]Combo, len(combos))
	for i, c := range combos {
		out[i] = FromModel(c)
	}
	return out
}

// ResolveAutoCombos greedily decomposes photoCount into quantity combos,
// largest bundle first. It does not backtrack, so the leftover count is
// not guaranteed minimal across all possible splits; receipts stay
// stable for a given catalog. Combos with TotalPhotos <= 0 never match.
//
// Invariant: sum(applied.Count * applied.Combo.TotalPhotos) +
// RemainingPhotos == photoCount.
func ResolveAutoCombos(photoCount int, combos []Combo) AutoComboResult {
	if photoCount < minComboPhotos || len(combos) == 0 {
		return AutoComboResult{
			Applied:         []AppliedCombo{},
			RemainingPhotos: photoCount,
		}
	}

	sorted := make([]Combo, 0, len(combos))
	for _, c := range combos {
		if c.TotalPhotos <= 0 {
			continue // degenerate bundle size
		}
		sorted = append(sorted, c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPhotos > sorted[j].TotalPhotos
	})

	remaining := photoCount
	applied := []AppliedCombo{}
	total := 0.0

	for _, combo := range sorted {
		if remaining < combo.TotalPhotos {
			continue
		}
		count := remaining / combo.TotalPhotos
		if count > 0 {
			applied = append(applied, AppliedCombo{Combo: combo, Count: count})
			remaining -= count * combo.TotalPhotos
			total += float64(count) * combo.Price
		}
	}

	return AutoComboResult{
		Applied:         applied,
		RemainingPhotos: remaining,
		TotalComboPrice: total,
	}
}

// ResolveAutoCombosWithFullAlbum applies a full-album combo when the
// selection reaches fullAlbumMinPhotos (DefaultFullAlbumMinPhotos when
// <= 0), otherwise delegates to ResolveAutoCombos over the active
// quantity combos. Exactly one of the two paths runs. When the catalog
// carries more than one active full-album combo, the lowest ID wins.
func ResolveAutoCombosWithFullAlbum(photoCount int, combos []Combo, fullAlbumMinPhotos int) AutoComboResult {
	if fullAlbumMinPhotos <= 0 {
		fullAlbumMinPhotos = DefaultFullAlbumMinPhotos
	}

	if len(combos) == 0 {
		return AutoComboResult{
			Applied:         []AppliedCombo{},
			RemainingPhotos: photoCount,
		}
	}

	var fullAlbum *Combo
	for i := range combos {
		c := &combos[i]
		if !c.Active || !c.IsFullAlbum {
			continue
		}
		if fullAlbum == nil || c.ID < fullAlbum.ID {
			fullAlbum = c
		}
	}

	if fullAlbum != nil && photoCount >= fullAlbumMinPhotos {
		return AutoComboResult{
			Applied:         []AppliedCombo{{Combo: *fullAlbum, Count: 1}},
			RemainingPhotos: 0,
			TotalComboPrice: fullAlbum.Price,
			IsFullAlbum:     true,
		}
	}

	quantityCombos := make([]Combo, 0, len(combos))
	for _, c := range combos {
		if c.Active && !c.IsFullAlbum && c.TotalPhotos > 0 {
			quantityCombos = append(quantityCombos, c)
		}
	}

	return ResolveAutoCombos(photoCount, quantityCombos)
}
