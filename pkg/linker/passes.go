package linker

import (
	"github.com/cznic/mathutil"
	"github.com/pkg/errors"
)

// CalcAbsoluteAddr lays every token out after the core's reserved memory.
// Labels take no space and share the address of what follows them.
func CalcAbsoluteAddr(l *Linker) error {
	if l.stage != stageLoaded {
		return errors.Wrap(ErrPassOrder, "addresses already assigned")
	}
	addr := l.Core.ReservedMem
	err := l.walkUnits(func(unit *Unit, tok *Token, section Section) error {
		if err := tok.place(addr); err != nil {
			return errors.Wrapf(err, "unit %s", unit.Name)
		}
		hi, next := mathutil.AddUint128_64(addr, tok.Size())
		if hi != 0 {
			return errors.Wrapf(ErrAddressOverflow, "unit %s: %s at %#x in %s", unit.Name, tok, addr, section)
		}
		addr = next
		return nil
	})
	if err != nil {
		return err
	}
	l.stage = stagePlaced
	return nil
}

func CollectLabels(l *Linker) error {
	if l.stage != stagePlaced {
		return errors.Wrap(ErrPassOrder, "labels collected before addresses were assigned")
	}
	err := l.walkUnits(func(unit *Unit, tok *Token, _ Section) error {
		return l.Labels.Define(tok, unit.Name)
	}, TokenKindLabel)
	if err != nil {
		return err
	}
	l.stage = stageCollected
	return nil
}

// UnwindPointers needs every label of every unit, since a pointer may
// name a label from a later unit.
func UnwindPointers(l *Linker) error {
	if l.stage != stageCollected {
		return errors.Wrap(ErrPassOrder, "pointers unwound before labels were collected")
	}
	err := l.walkUnits(func(unit *Unit, tok *Token, _ Section) error {
		target, ok := l.Labels.Lookup(tok.Name)
		if !ok {
			return errors.Wrapf(ErrUndefinedLabel, "label not found: %s (unit %s)", tok.Name, unit.Name)
		}
		return tok.resolve(target.Addr())
	}, TokenKindPointer)
	if err != nil {
		return err
	}
	l.stage = stageUnwound
	return nil
}

func BssSize(l *Linker) (uint64, error) {
	size := uint64(0)
	err := l.walkSection(SectionBss, func(tok *Token, _ Section) error {
		hi, next := mathutil.AddUint128_64(size, tok.Size())
		if hi != 0 {
			return errors.Wrapf(ErrAddressOverflow, "bss size at %s", tok)
		}
		size = next
		return nil
	})
	return size, err
}
