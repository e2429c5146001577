package linker

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hcyang1106/haxld/pkg/utils"
	"github.com/pkg/errors"
)

const WordSize = 8

type TokenKind uint8

const (
	TokenKindCode TokenKind = iota
	TokenKindData
	TokenKindLabel
	TokenKindPointer
)

func (k TokenKind) String() string {
	switch k {
	case TokenKindCode:
		return "code"
	case TokenKindData:
		return "data"
	case TokenKindLabel:
		return "label"
	case TokenKindPointer:
		return "pointer"
	}
	return "unknown"
}

// Token is the smallest piece of linked output. Tokens are built unresolved
// by the loader; the linker places them (address) and, for pointers,
// resolves them (payload). Both happen once per link.
type Token struct {
	Kind TokenKind

	// Name is the label name for labels and the target for pointers.
	Name string

	Content []byte
	Reserve uint64 // zero-filled size when Content is nil

	addr     uint64
	placed   bool
	payload  uint64
	resolved bool
}

func NewCodeToken(content []byte) *Token {
	return &Token{Kind: TokenKindCode, Content: content}
}

func NewDataToken(content []byte) *Token {
	return &Token{Kind: TokenKindData, Content: content}
}

func NewReserveToken(size uint64) *Token {
	return &Token{Kind: TokenKindData, Reserve: size}
}

func NewLabelToken(name string) *Token {
	return &Token{Kind: TokenKindLabel, Name: name}
}

func NewPointerToken(target string) *Token {
	return &Token{Kind: TokenKindPointer, Name: target}
}

// fixed labels come from the machine core and are placed from the start
func NewFixedLabel(name string, addr uint64) *Token {
	return &Token{Kind: TokenKindLabel, Name: name, addr: addr, placed: true}
}

func (t *Token) Size() uint64 {
	switch t.Kind {
	case TokenKindLabel:
		return 0
	case TokenKindPointer:
		return WordSize
	}
	if t.Content != nil {
		return uint64(len(t.Content))
	}
	return t.Reserve
}

func (t *Token) Addr() uint64 {
	return t.addr
}

func (t *Token) IsPlaced() bool {
	return t.placed
}

func (t *Token) Payload() uint64 {
	return t.payload
}

func (t *Token) IsResolved() bool {
	return t.resolved
}

func (t *Token) place(addr uint64) error {
	if t.placed {
		return errors.Wrapf(ErrTokenReused, "%s placed twice", t)
	}
	t.addr = addr
	t.placed = true
	return nil
}

func (t *Token) resolve(addr uint64) error {
	if t.Kind != TokenKindPointer {
		return errors.Errorf("resolve on %s token %s", t.Kind, t)
	}
	if t.resolved {
		return errors.Wrapf(ErrTokenReused, "%s resolved twice", t)
	}
	t.payload = addr
	t.resolved = true
	return nil
}

func (t *Token) unplace() {
	t.addr = 0
	t.placed = false
	t.payload = 0
	t.resolved = false
}

func (t *Token) Bytecode() ([]byte, error) {
	switch t.Kind {
	case TokenKindLabel:
		return nil, nil
	case TokenKindPointer:
		if !t.resolved {
			return nil, errors.Wrapf(ErrPassOrder, "pointer to %s not resolved", t.Name)
		}
		buf := bytes.Buffer{}
		utils.Write[uint64](&buf, t.payload)
		return buf.Bytes(), nil
	}
	if t.Content != nil {
		return t.Content, nil
	}
	return make([]byte, t.Reserve), nil
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenKindLabel:
		return t.Name + ":"
	case TokenKindPointer:
		if t.resolved {
			return fmt.Sprintf("ptr %s (0x%x)", t.Name, t.payload)
		}
		return "ptr " + t.Name
	}
	if t.Content == nil {
		return fmt.Sprintf("resb %d", t.Reserve)
	}
	parts := make([]string, 0, len(t.Content))
	for _, b := range t.Content {
		parts = append(parts, fmt.Sprintf("%02x", b))
	}
	return t.Kind.String() + " " + strings.Join(parts, " ")
}
