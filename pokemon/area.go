package pokemon

import "fmt"

// Slot is one entry of an encounter table.
type Slot struct {
	Specie   uint16
	Form     uint8
	MinLevel uint8
	MaxLevel uint8
	Info     *PersonalInfo
}

// EncounterArea is the wild encounter table of one location and encounter category.
type EncounterArea struct {
	Location  uint16
	Rate      uint8
	Encounter Encounter
	Slots     []Slot
}

// Slot returns slot i. Out of range indexes are programming errors.
func (a *EncounterArea) Slot(i uint8) *Slot {
	if int(i) >= len(a.Slots) {
		panic(fmt.Sprintf("pokemon: slot %d out of range (%d slots)", i, len(a.Slots)))
	}
	return &a.Slots[i]
}

// SlotsByLead returns the slots a Magnet Pull (Steel) or Static (Electric) lead can
// force. Other leads have no type preference and return nil.
func (a *EncounterArea) SlotsByLead(lead Lead) []uint8 {
	var t uint8
	switch lead {
	case LeadMagnetPull:
		t = TypeSteel
	case LeadStatic:
		t = TypeElectric
	default:
		return nil
	}
	var out []uint8
	for i := range a.Slots {
		if a.Slots[i].Info.HasType(t) {
			out = append(out, uint8(i))
		}
	}
	return out
}

// Level draws a level in [MinLevel, MaxLevel] from a random value.
func (s *Slot) Level(rand uint16) uint8 {
	span := uint16(s.MaxLevel-s.MinLevel) + 1
	return s.MinLevel + uint8(rand%span)
}

var (
	grassThresholds    = []uint8{20, 40, 50, 60, 70, 80, 85, 90, 94, 98, 99, 100}
	surfThresholds     = []uint8{60, 90, 95, 99, 100}
	oldRodThresholds3  = []uint8{70, 100}
	goodRodThresholds3 = []uint8{60, 80, 100}
	superRodThresholds = []uint8{40, 80, 95, 99, 100}
	honeyThresholds    = []uint8{40, 60, 80, 90, 95, 100}
	contestThresholds  = []uint8{20, 40, 50, 60, 70, 80, 85, 90, 95, 100}
)

// EncounterSlot maps a roll in [0, 100) to a slot index of the category's table in
// version. Generation 3 rods have two and three slots; later rods have five, with the
// Old Rod sharing the surfing table and the Good Rod the Super Rod's.
func EncounterSlot(version Game, e Encounter, roll uint8) uint8 {
	gen3 := version.Has(Gen3)
	var t []uint8
	switch e {
	case Grass, DoubleGrass, Headbutt:
		t = grassThresholds
	case Surfing, RockSmash:
		t = surfThresholds
	case OldRod:
		t = surfThresholds
		if gen3 {
			t = oldRodThresholds3
		}
	case GoodRod:
		t = superRodThresholds
		if gen3 {
			t = goodRodThresholds3
		}
	case SuperRod:
		t = superRodThresholds
	case HoneyTree:
		t = honeyThresholds
	case BugCatchingContest:
		t = contestThresholds
	default:
		panic(fmt.Sprintf("pokemon: no slot table for encounter %d", e))
	}
	for i, limit := range t {
		if roll < limit {
			return uint8(i)
		}
	}
	return uint8(len(t) - 1)
}
