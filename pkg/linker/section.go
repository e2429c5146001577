package linker

type Section uint8

const (
	SectionText Section = iota
	SectionData
	SectionBss
)

// traversal order of every pass
var Sections = [...]Section{SectionText, SectionData, SectionBss}

func (s Section) String() string {
	switch s {
	case SectionText:
		return "text"
	case SectionData:
		return "data"
	case SectionBss:
		return "bss"
	}
	return "unknown"
}

// only text and data carry bytes in the image
func (s Section) IsEmitted() bool {
	return s == SectionText || s == SectionData
}

func SectionFromName(name string) (Section, bool) {
	switch name {
	case ".text", "text":
		return SectionText, true
	case ".data", "data":
		return SectionData, true
	case ".bss", "bss":
		return SectionBss, true
	}
	return 0, false
}
