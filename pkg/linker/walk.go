package linker

type WalkFunc func(tok *Token, section Section) error

// WalkTokens visits every token section by section, then unit by unit in
// load order, then in stream order. With kinds given only tokens of those
// kinds are visited. The first error stops the walk.
func (l *Linker) WalkTokens(fn WalkFunc, kinds ...TokenKind) error {
	return l.walkUnits(func(_ *Unit, tok *Token, section Section) error {
		return fn(tok, section)
	}, kinds...)
}

func (l *Linker) walkSection(section Section, fn WalkFunc, kinds ...TokenKind) error {
	return l.walkSectionUnits(section, func(_ *Unit, tok *Token, section Section) error {
		return fn(tok, section)
	}, kinds...)
}

// same order as WalkTokens, also naming the unit each token belongs to
func (l *Linker) walkUnits(fn func(*Unit, *Token, Section) error, kinds ...TokenKind) error {
	for _, section := range Sections {
		if err := l.walkSectionUnits(section, fn, kinds...); err != nil {
			return err
		}
	}
	return nil
}

func (l *Linker) walkSectionUnits(section Section, fn func(*Unit, *Token, Section) error, kinds ...TokenKind) error {
	for _, unit := range l.Units {
		unit.SetSection(section)
		for _, tok := range unit.Tokens() {
			if !matchKind(tok, kinds) {
				continue
			}
			if err := fn(unit, tok, unit.Section()); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchKind(tok *Token, kinds []TokenKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return true
		}
	}
	return false
}
