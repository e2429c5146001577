package linker

import (
	"sort"

	"github.com/pkg/errors"
)

const EntryLabel = "main"

// LabelTable maps a label name to the token defining it. Names are unique
// across the core's labels and every unit.
type LabelTable struct {
	Map map[string]*Token
	// where each name was defined: a unit name, or the core
	Origin map[string]string
}

// the core's labels are copied, never shared between link runs
func NewLabelTable(core *Core) *LabelTable {
	t := &LabelTable{
		Map:    make(map[string]*Token, len(core.Labels)),
		Origin: make(map[string]string, len(core.Labels)),
	}
	for name, tok := range core.Labels {
		t.Map[name] = tok
		t.Origin[name] = "core " + core.String()
	}
	return t
}

func (t *LabelTable) Define(tok *Token, unit string) error {
	if _, ok := t.Map[tok.Name]; ok {
		return errors.Wrapf(ErrDuplicateLabel, "label already exists: %s (in %s, first defined in %s)",
			tok.Name, unit, t.Origin[tok.Name])
	}
	t.Map[tok.Name] = tok
	t.Origin[tok.Name] = unit
	return nil
}

func (t *LabelTable) Lookup(name string) (*Token, bool) {
	tok, ok := t.Map[name]
	return tok, ok
}

func (t *LabelTable) Len() int {
	return len(t.Map)
}

func (t *LabelTable) Names() []string {
	names := make([]string, 0, len(t.Map))
	for name := range t.Map {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
