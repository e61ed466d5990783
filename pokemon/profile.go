package pokemon

// Profile is the trainer a search is run for. It is read-only once built.
type Profile struct {
	Name        string
	Version     Game
	TID         uint16
	SID         uint16
	NationalDex bool
	ShinyCharm  bool
	MemoryLink  bool
}

// TSV is the trainer shiny value, the XOR of both trainer ids.
func (p *Profile) TSV() uint16 { return p.TID ^ p.SID }

// ShinyWindow is the XOR distance below which a PID is shiny for this profile's game.
func (p *Profile) ShinyWindow() uint16 {
	if p.Version.Has(Gen8) {
		return 16
	}
	return 8
}

// Shininess evaluates pid against this trainer.
func (p *Profile) Shininess(pid uint32) uint8 {
	return Shininess(pid, p.TSV(), p.ShinyWindow())
}
