package loadmap

import "errors"

const (
	// PalletCount is the fixed number of pallet slots in a trailer.
	PalletCount = 30
	// RowLength is the number of slots per trailer row (nose to door).
	RowLength = 15
)

var ErrInvalidPosition = errors.New("pallet position out of range")

// PalletType is the cargo category assigned to a slot. The zero value is an
// empty slot.
type PalletType string

const (
	TypeNone    PalletType = ""
	TypeFrozen  PalletType = "Frozen"
	TypeChiller PalletType = "Chiller"
	TypeAmbient PalletType = "Ambient"
	TypeEggs    PalletType = "Eggs"
	TypeBread   PalletType = "Bread"
	TypeDP      PalletType = "DP"
	TypeFlower  PalletType = "Flower"
	TypeEquip   PalletType = "Equip"
)

// PalletTypes lists the recognized categories in display order.
var PalletTypes = []PalletType{
	TypeFrozen,
	TypeChiller,
	TypeAmbient,
	TypeEggs,
	TypeBread,
	TypeDP,
	TypeFlower,
	TypeEquip,
}

// Known reports whether t is one of the eight recognized categories.
func (t PalletType) Known() bool {
	for _, k := range PalletTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Pallet is one physical slot. Pos is the stable identity; Row and Col are
// derived from it.
type Pallet struct {
	Pos   int        `json:"pos"`
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Type  PalletType `json:"type"`
	Store string     `json:"store"`
	Zone  string     `json:"zone"`
}

// NewPallet returns a blank pallet at pos with its layout coordinates filled in.
func NewPallet(pos int) Pallet {
	row, col := Coordinates(pos)
	return Pallet{Pos: pos, Row: row, Col: col}
}

// Coordinates maps a 1-based position to its row and column.
func Coordinates(pos int) (row, col int) {
	return (pos-1)/RowLength + 1, (pos-1)%RowLength + 1
}

// ValidPosition reports whether pos addresses a slot.
func ValidPosition(pos int) bool {
	return pos >= 1 && pos <= PalletCount
}

// Empty reports whether the slot carries no type, store or zone.
func (p Pallet) Empty() bool {
	return p.Type == TypeNone && p.Store == "" && p.Zone == ""
}
