// Package pokemon holds the data model shared by every generation: derived state records,
// encounter tables and templates supplied by a data loader, trainer profiles and filters.
package pokemon

import "errors"

// Any marks a filter or template field that accepts every value.
const Any uint8 = 255

var (
	ErrUnsupportedMethod   = errors.New("unsupported method")
	ErrUnsupportedLead     = errors.New("unsupported lead")
	ErrUnsupportedTemplate = errors.New("unsupported template")
)

// Game is a set of titles. Single titles are one bit, groups are unions.
type Game uint32

const (
	Ruby Game = 1 << iota
	Sapphire
	Emerald
	FireRed
	LeafGreen
	Colosseum
	Gales
	Diamond
	Pearl
	Platinum
	HeartGold
	SoulSilver
	Black
	White
	Black2
	White2
	Sword
	Shield
	BrilliantDiamond
	ShiningPearl

	RS   = Ruby | Sapphire
	RSE  = RS | Emerald
	FRLG = FireRed | LeafGreen
	Gen3 = RSE | FRLG
	GC   = Colosseum | Gales
	DP   = Diamond | Pearl
	DPPt = DP | Platinum
	HGSS = HeartGold | SoulSilver
	Gen4 = DPPt | HGSS
	BW   = Black | White
	BW2  = Black2 | White2
	Gen5 = BW | BW2
	SwSh = Sword | Shield
	BDSP = BrilliantDiamond | ShiningPearl
	Gen8 = SwSh | BDSP
)

// Has reports whether g shares at least one title with other.
func (g Game) Has(other Game) bool { return g&other != 0 }

// Lead is the ability of the first party member, which changes the draw sequence of an
// encounter.
type Lead uint8

const (
	LeadNone Lead = iota
	LeadSynchronize
	// LeadCuteCharmMale and LeadCuteCharmFemale name the gender the lead forces.
	LeadCuteCharmMale
	LeadCuteCharmFemale
	LeadMagnetPull
	LeadStatic
	LeadPressure
	LeadSuctionCups
	LeadCompoundEyes
)

func (l Lead) IsCuteCharm() bool { return l == LeadCuteCharmMale || l == LeadCuteCharmFemale }

func (l Lead) String() string {
	switch l {
	case LeadNone:
		return "None"
	case LeadSynchronize:
		return "Synchronize"
	case LeadCuteCharmMale:
		return "Cute Charm (male)"
	case LeadCuteCharmFemale:
		return "Cute Charm (female)"
	case LeadMagnetPull:
		return "Magnet Pull"
	case LeadStatic:
		return "Static"
	case LeadPressure:
		return "Pressure"
	case LeadSuctionCups:
		return "Suction Cups"
	case LeadCompoundEyes:
		return "Compound Eyes"
	}
	return "Unknown"
}

// Encounter is the category of a wild encounter table.
type Encounter uint8

const (
	Grass Encounter = iota
	DoubleGrass
	RockSmash
	Surfing
	OldRod
	GoodRod
	SuperRod
	HoneyTree
	BugCatchingContest
	Headbutt
)

// IsFishing reports whether the encounter needs a bite check before the slot draw.
func (e Encounter) IsFishing() bool { return e == OldRod || e == GoodRod || e == SuperRod }

// Method is the draw sequence a generator follows.
type Method uint8

const (
	Method1 Method = iota
	Method2
	Method4
	MethodH1
	MethodH2
	MethodH4
	XDColo
	MethodJ
	MethodK
	PokeRadarShiny
	Method5
)

func (m Method) String() string {
	return [...]string{
		"Method 1", "Method 2", "Method 4", "Method H1", "Method H2", "Method H4",
		"XD/Colo", "Method J", "Method K", "Poke Radar Shiny", "Method 5",
	}[m]
}

// Shiny is the shininess policy of a template.
type Shiny uint8

const (
	ShinyRandom Shiny = iota
	ShinyNever
	ShinyAlways
	ShinyStar
	ShinySquare
)

// Type ids used by SlotsByLead.
const (
	TypeSteel    uint8 = 8
	TypeElectric uint8 = 12
)
