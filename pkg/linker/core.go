package linker

// Core describes the machine the image is linked for: how much low memory
// is reserved and which labels the machine itself defines there.
type Core struct {
	Name        string
	ReservedMem uint64
	Labels      map[string]*Token
}

const DefaultReservedMem = 1024

// interrupt vectors and memory mapped ports inside reserved memory
var defaultCoreLabels = []struct {
	name string
	addr uint64
}{
	{"ivt", 0x000},
	{"int_reset", 0x000},
	{"int_fault", 0x008},
	{"int_timer", 0x010},
	{"int_input", 0x018},
	{"port_in", 0x200},
	{"port_out", 0x208},
	{"port_halt", 0x210},
}

func NewCore() *Core {
	c := &Core{
		Name:        "haxor",
		ReservedMem: DefaultReservedMem,
		Labels:      make(map[string]*Token),
	}
	for _, l := range defaultCoreLabels {
		c.Labels[l.name] = NewFixedLabel(l.name, l.addr)
	}
	return c
}

// NewCoreWith builds a core from an explicit label set.
func NewCoreWith(reserved uint64, labels map[string]uint64) *Core {
	c := &Core{
		Name:        "custom",
		ReservedMem: reserved,
		Labels:      make(map[string]*Token, len(labels)),
	}
	for name, addr := range labels {
		c.Labels[name] = NewFixedLabel(name, addr)
	}
	return c
}

func (c *Core) String() string {
	return c.Name
}
