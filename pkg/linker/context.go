package linker

import (
	"io"
)

const DefaultStack = 4096

type Args struct {
	Output string
	Stack  uint64
	Quiet  bool
}

type stage uint8

const (
	stageLoaded stage = iota
	stagePlaced
	stageCollected
	stageUnwound
)

// Linker holds the units in load order and the state of one link run.
// It is not safe for concurrent use.
type Linker struct {
	Args   Args
	Core   *Core
	Units  []*Unit
	Labels *LabelTable
	Trace  io.Writer

	stage stage
}

func NewLinker(core *Core) *Linker {
	return &Linker{
		Args: Args{
			Output: "a.hax",
			Stack:  DefaultStack,
		},
		Core:   core,
		Labels: NewLabelTable(core),
		Trace:  io.Discard,
	}
}

func (l *Linker) SetStack(size uint64) {
	l.Args.Stack = size
}

func (l *Linker) AddUnit(unit *Unit) {
	l.Units = append(l.Units, unit)
}

func (l *Linker) LoadUnit(filename string) error {
	unit, err := LoadUnit(filename)
	if err != nil {
		return err
	}
	l.AddUnit(unit)
	return nil
}

// reset drops everything derived by a previous link run
func (l *Linker) reset() {
	l.WalkTokens(func(tok *Token, _ Section) error {
		tok.unplace()
		return nil
	})
	l.Labels = NewLabelTable(l.Core)
	l.stage = stageLoaded
}
