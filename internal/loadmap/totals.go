package loadmap

// Totals is the per-category pallet count snapshot stored with a record.
type Totals struct {
	Frozen  int `json:"frozen"`
	Chiller int `json:"chiller"`
	Ambient int `json:"ambient"`
	Eggs    int `json:"eggs"`
	Bread   int `json:"bread"`
	DP      int `json:"dp"`
	Flower  int `json:"flower"`
	Equip   int `json:"equip"`
	Total   int `json:"total"`
}

// ComputeTotals counts pallets by exact type. Blank and unrecognized types
// count toward neither a category nor the total. The result is always built
// from scratch; callers must not patch a previous Totals in place.
func ComputeTotals(pallets []Pallet) Totals {
	var t Totals
	for _, p := range pallets {
		if c := t.counter(p.Type); c != nil {
			*c++
			t.Total++
		}
	}
	return t
}

// Count returns the count for one category.
func (t Totals) Count(pt PalletType) int {
	if c := t.counter(pt); c != nil {
		return *c
	}
	return 0
}

func (t *Totals) counter(pt PalletType) *int {
	switch pt {
	case TypeFrozen:
		return &t.Frozen
	case TypeChiller:
		return &t.Chiller
	case TypeAmbient:
		return &t.Ambient
	case TypeEggs:
		return &t.Eggs
	case TypeBread:
		return &t.Bread
	case TypeDP:
		return &t.DP
	case TypeFlower:
		return &t.Flower
	case TypeEquip:
		return &t.Equip
	}
	return nil
}
