package linker

import (
	"bytes"
	"unsafe"

	"github.com/hcyang1106/haxld/pkg/utils"
	"github.com/pkg/errors"
)

const Version = 1

const HeaderSize = int(unsafe.Sizeof(Header{}))

type Header struct {
	Version    uint64
	EntryPoint uint64
	StackSize  uint64
	BssSize    uint64
}

func BuildHeader(l *Linker) (*Header, error) {
	if l.stage != stageUnwound {
		return nil, errors.Wrap(ErrPassOrder, "header built before pointers were unwound")
	}
	entry, ok := l.Labels.Lookup(EntryLabel)
	if !ok {
		return nil, errors.Wrapf(ErrMissingEntryPoint, "no %q label defined", EntryLabel)
	}
	bss, err := BssSize(l)
	if err != nil {
		return nil, err
	}
	return &Header{
		Version:    Version,
		EntryPoint: entry.Addr(),
		StackSize:  l.Args.Stack,
		BssSize:    bss,
	}, nil
}

func (h *Header) Dump() []byte {
	buf := bytes.Buffer{}
	utils.Write[Header](&buf, *h)
	return buf.Bytes()
}

func ReadHeader(content []byte) (*Header, error) {
	if len(content) < HeaderSize {
		return nil, errors.Errorf("image is smaller than header size: %d", len(content))
	}
	h := &Header{}
	if err := utils.Read[Header](content, h); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	return h, nil
}
