package pokemon

// Stat and IV indexes. Seed recovery and the IV words use the same order.
const (
	HP = iota
	Atk
	Def
	SpA
	SpD
	Spe
)

// natureStat maps the nature's row/column (Atk, Def, Spe, SpA, SpD) to a stat index.
var natureStat = [5]int{Atk, Def, Spe, SpA, SpD}

// characteristicStat is the stat order characteristics are listed in.
var characteristicStat = [6]int{HP, Atk, Def, Spe, SpA, SpD}

// State is the derived record of one generated Pokémon. Every derived field is computed
// from PID, EC, IVs, level, nature and species data by NewState or NewStateEC and never
// changed afterwards.
type State struct {
	pid            uint32
	ec             uint32
	stats          [6]uint16
	ability        uint16
	ivs            [6]uint8
	abilityIndex   uint8
	gender         uint8
	level          uint8
	nature         uint8
	shiny          uint8
	hiddenPower    uint8
	hpStrength     uint8
	characteristic uint8
}

// NewState builds a state whose encryption constant is its PID, as in generations 3 to 5.
func NewState(pid uint32, ivs [6]uint8, abilityIndex, gender, level, nature, shiny uint8, info *PersonalInfo) State {
	return NewStateEC(pid, pid, ivs, abilityIndex, gender, level, nature, shiny, info)
}

// NewStateEC builds a state with a separate encryption constant.
func NewStateEC(ec, pid uint32, ivs [6]uint8, abilityIndex, gender, level, nature, shiny uint8, info *PersonalInfo) State {
	s := State{
		pid:          pid,
		ec:           ec,
		ivs:          ivs,
		abilityIndex: abilityIndex,
		ability:      info.Ability(abilityIndex),
		gender:       gender,
		level:        level,
		nature:       nature,
		shiny:        shiny,
	}
	s.stats = Stats(ivs, level, nature, info)
	s.hiddenPower, s.hpStrength = HiddenPower(ivs)
	s.characteristic = Characteristic(ec, ivs)
	return s
}

// PID is the personality value.
func (s *State) PID() uint32 { return s.pid }

// EC is the encryption constant, equal to the PID before generation 6.
func (s *State) EC() uint32 { return s.ec }

// IVs are the six IVs in HP, Atk, Def, SpA, SpD, Spe order.
func (s *State) IVs() [6]uint8 { return s.ivs }

// IV returns the IV at stat index i.
func (s *State) IV(i int) uint8 { return s.ivs[i] }

// Stats are the computed stats at Level.
func (s *State) Stats() [6]uint16 { return s.stats }

// Ability is the ability ID from the species data.
func (s *State) Ability() uint16 { return s.ability }

// AbilityIndex is the ability slot: 0, 1 or 2 for the hidden ability.
func (s *State) AbilityIndex() uint8 { return s.abilityIndex }

// Gender is 0 male, 1 female, 2 genderless.
func (s *State) Gender() uint8 { return s.gender }

func (s *State) Level() uint8 { return s.level }

func (s *State) Nature() uint8 { return s.nature }

// Shiny is 0 not shiny, 1 star, 2 square.
func (s *State) Shiny() uint8 { return s.shiny }

// HiddenPower is the hidden power type, 0 Fighting through 15 Dark.
func (s *State) HiddenPower() uint8 { return s.hiddenPower }

// HiddenPowerStrength is the hidden power base power.
func (s *State) HiddenPowerStrength() uint8 { return s.hpStrength }

// Characteristic is stat*5 + iv%5 of the characteristic stat.
func (s *State) Characteristic() uint8 { return s.characteristic }

// Stats computes the six stats at level with nature's ±10% modifier.
func Stats(ivs [6]uint8, level, nature uint8, info *PersonalInfo) [6]uint16 {
	var out [6]uint16
	lv := uint32(level)
	for i := range 6 {
		base := uint32(info.Stats[i])*2 + uint32(ivs[i])
		if i == HP {
			if info.Stats[HP] == 1 {
				out[i] = 1
			} else {
				out[i] = uint16(base*lv/100 + lv + 10)
			}
			continue
		}
		out[i] = uint16(base*lv/100 + 5)
	}
	up, down := natureStat[nature/5], natureStat[nature%5]
	if up != down {
		out[up] = out[up] * 11 / 10
		out[down] = out[down] * 9 / 10
	}
	return out
}

// HiddenPower returns the type (0 = Fighting .. 15 = Dark) and base power.
func HiddenPower(ivs [6]uint8) (uint8, uint8) {
	var typ, power uint32
	for bit, stat := range characteristicStat {
		typ |= uint32(ivs[stat]&1) << bit
		power |= uint32((ivs[stat]>>1)&1) << bit
	}
	return uint8(typ * 15 / 63), uint8(power*40/63 + 30)
}

// Characteristic returns stat*5 + iv%5 for the highest IV, ties broken by starting at the
// stat selected by ec%6 and walking forward.
func Characteristic(ec uint32, ivs [6]uint8) uint8 {
	start := int(ec % 6)
	best := start
	for i := range 6 {
		idx := (start + i) % 6
		if ivs[characteristicStat[idx]] > ivs[characteristicStat[best]] {
			best = idx
		}
	}
	return uint8(best*5) + ivs[characteristicStat[best]]%5
}

// GenderFromPID derives the gender from the low PID byte: 0 male, 1 female, 2 genderless.
func GenderFromPID(pid uint32, ratio uint8) uint8 {
	switch ratio {
	case GenderUnknown:
		return 2
	case GenderFemaleOnly:
		return 1
	case GenderMaleOnly:
		return 0
	}
	if uint8(pid&0xff) < ratio {
		return 1
	}
	return 0
}

// ShinyValue folds the PID halves together.
func ShinyValue(pid uint32) uint16 { return uint16(pid>>16) ^ uint16(pid) }

// Shininess compares a PID with a trainer shiny value: 0 not shiny, 1 star, 2 square.
// Generations 3 to 7 use a window of 8, generation 8 a window of 16.
func Shininess(pid uint32, tsv uint16, window uint16) uint8 {
	x := ShinyValue(pid) ^ tsv
	switch {
	case x == 0:
		return 2
	case x < window:
		return 1
	}
	return 0
}

// IsShiny is Shininess(pid, tsv, 8) != 0.
func IsShiny(pid uint32, tsv uint16) bool { return ShinyValue(pid)^tsv < 8 }

// IVsFromWords unpacks the two 15-bit IV words: HP/Atk/Def in the first, Spe/SpA/SpD in
// the second.
func IVsFromWords(iv1, iv2 uint16) [6]uint8 {
	return [6]uint8{
		uint8(iv1 & 31),
		uint8((iv1 >> 5) & 31),
		uint8((iv1 >> 10) & 31),
		uint8((iv2 >> 5) & 31),
		uint8((iv2 >> 10) & 31),
		uint8(iv2 & 31),
	}
}
