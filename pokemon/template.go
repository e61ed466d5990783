package pokemon

import "fmt"

// StaticTemplate describes a fixed encounter, gift or roamer. Templates come from a data
// loader and are shared read-only by every worker.
type StaticTemplate struct {
	Version Game
	Specie  uint16
	Form    uint8
	Level   uint8
	Shiny   Shiny
	// Ability and Gender are Any unless the encounter fixes them.
	Ability uint8
	Gender  uint8
	// IVCount is the number of IVs forced to 31 (generation 8).
	IVCount uint8
	Roamer  bool
	Info    *PersonalInfo
}

// ShadowType selects the lock chain variant of a GameCube shadow Pokémon.
type ShadowType uint8

const (
	// SingleLock is a shadow with one lock and no preceding shadow.
	SingleLock ShadowType = iota
	// FirstShadow is the first shadow of a team.
	FirstShadow
	// FirstShadowShinySkip is a first shadow whose own PID is redrawn when shiny.
	FirstShadowShinySkip
	// SecondShadowSet is a later shadow whose earlier shadow was already caught.
	SecondShadowSet
	// SecondShadowUnset is a later shadow whose earlier shadow was not caught yet.
	SecondShadowUnset
	// EReader is a Colosseum e-reader shadow: no gap draws and no shiny checks.
	EReader
)

// LockInfo is one team member that precedes a shadow Pokémon. Its PID is redrawn until
// the nature matches and the gender byte falls inside [GenderLower, GenderUpper].
type LockInfo struct {
	Nature      uint8
	GenderLower uint8
	GenderUpper uint8
	// Ignore marks an earlier shadow Pokémon; it consumes a fixed number of draws.
	Ignore bool
}

// Compare reports whether pid satisfies the lock.
func (l LockInfo) Compare(pid uint32) bool {
	if l.Ignore {
		return true
	}
	if l.Nature != Any && uint8(pid%25) != l.Nature {
		return false
	}
	g := uint8(pid & 0xff)
	return g >= l.GenderLower && g <= l.GenderUpper
}

// NewLock is a lock on nature only.
func NewLock(nature uint8) LockInfo {
	return LockInfo{Nature: nature, GenderLower: 0, GenderUpper: 255}
}

// ShadowTemplate is a shadow Pokémon with the ordered locks of the team members
// generated before it.
type ShadowTemplate struct {
	StaticTemplate
	Type  ShadowType
	locks []LockInfo
}

// NewShadowTemplate copies locks so the template stays immutable.
func NewShadowTemplate(static StaticTemplate, typ ShadowType, locks ...LockInfo) *ShadowTemplate {
	return &ShadowTemplate{StaticTemplate: static, Type: typ, locks: append([]LockInfo(nil), locks...)}
}

// Count returns the number of locks.
func (s *ShadowTemplate) Count() int { return len(s.locks) }

// Lock returns lock i. Out of range indexes are programming errors.
func (s *ShadowTemplate) Lock(i int) LockInfo {
	if i < 0 || i >= len(s.locks) {
		panic(fmt.Sprintf("pokemon: lock %d out of range (%d locks)", i, len(s.locks)))
	}
	return s.locks[i]
}
