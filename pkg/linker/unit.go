package linker

// Unit is one translation unit: a token stream per section plus the
// section the linker is currently walking.
type Unit struct {
	Name    string
	Streams [len(Sections)][]*Token
	section Section
}

func NewUnit(name string) *Unit {
	return &Unit{Name: name}
}

func (u *Unit) Append(section Section, tok *Token) {
	u.Streams[section] = append(u.Streams[section], tok)
}

func (u *Unit) SetSection(section Section) {
	u.section = section
}

func (u *Unit) Section() Section {
	return u.section
}

// tokens of the current section, in stream order
func (u *Unit) Tokens() []*Token {
	return u.Streams[u.section]
}
