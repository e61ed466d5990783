package pokemon

import "fmt"

// Gender ratio markers stored in PersonalInfo.
const (
	GenderMaleOnly   uint8 = 0
	GenderFemaleOnly uint8 = 254
	GenderUnknown    uint8 = 255
)

// PersonalInfo is the species metadata a data loader supplies. Stats are in the order HP,
// Atk, Def, SpA, SpD, Spe.
type PersonalInfo struct {
	Stats     [6]uint8
	Gender    uint8
	Abilities [3]uint16
	Types     [2]uint8
	Items     [3]uint16
	// FormStatIndex is the table position of form 1; 0 when the species has no forms.
	FormStatIndex uint16
	FormCount     uint8
	Present       bool
}

// Ability returns the ability id in slot i (0, 1 or 2 for the hidden ability).
func (p *PersonalInfo) Ability(i uint8) uint16 {
	if i > 2 {
		panic(fmt.Sprintf("pokemon: ability slot %d out of range", i))
	}
	return p.Abilities[i]
}

// HasType reports whether either type of the species is t.
func (p *PersonalInfo) HasType(t uint8) bool { return p.Types[0] == t || p.Types[1] == t }

// FixedGender reports whether the species has only one possible gender.
func (p *PersonalInfo) FixedGender() bool {
	switch p.Gender {
	case GenderMaleOnly, GenderFemaleOnly, GenderUnknown:
		return true
	}
	return false
}

// PersonalTable is the read-only species table of one game.
type PersonalTable struct {
	entries []PersonalInfo
}

// NewPersonalTable wraps entries indexed by national dex number, followed by alternate
// forms at each species' FormStatIndex.
func NewPersonalTable(entries []PersonalInfo) *PersonalTable {
	return &PersonalTable{entries: entries}
}

// Get returns the entry of species in form. Out of range lookups are programming errors.
func (t *PersonalTable) Get(species uint16, form uint8) *PersonalInfo {
	if int(species) >= len(t.entries) {
		panic(fmt.Sprintf("pokemon: species %d out of range (%d entries)", species, len(t.entries)))
	}
	base := &t.entries[species]
	if form == 0 || base.FormStatIndex == 0 {
		return base
	}
	if form >= base.FormCount {
		panic(fmt.Sprintf("pokemon: form %d of species %d out of range", form, species))
	}
	return &t.entries[int(base.FormStatIndex)+int(form)-1]
}

// Len returns the number of entries including forms.
func (t *PersonalTable) Len() int { return len(t.entries) }
