package pokemon

// Options are the advance window and lead shared by every generator.
type Options struct {
	InitialAdvances uint32
	MaxAdvances     uint32
	// Delay is the number of draws the game consumes between the seed and the first
	// advance the player controls.
	Delay       uint32
	Lead        Lead
	SynchNature uint8
}

// Start is the number of engine steps before the first emitted advance.
func (o *Options) Start() uint32 { return o.InitialAdvances + o.Delay }
