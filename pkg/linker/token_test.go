package linker

import (
	"testing"

	"github.com/pkg/errors"
)

func TestTokenSizes(t *testing.T) {
	tests := []struct {
		tok  *Token
		size uint64
	}{
		{NewCodeToken([]byte{1, 2, 3}), 3},
		{NewDataToken([]byte{1}), 1},
		{NewReserveToken(32), 32},
		{NewLabelToken("l"), 0},
		{NewPointerToken("l"), WordSize},
	}
	for _, tt := range tests {
		if got := tt.tok.Size(); got != tt.size {
			t.Errorf("%s: size %d, want %d", tt.tok, got, tt.size)
		}
	}
}

func TestPointerBytecode(t *testing.T) {
	ptr := NewPointerToken("x")
	if _, err := ptr.Bytecode(); errors.Cause(err) != ErrPassOrder {
		t.Fatalf("unresolved pointer bytecode: %v", err)
	}
	if err := ptr.place(0x10); err != nil {
		t.Fatal(err)
	}
	if err := ptr.resolve(0x0102030405060708); err != nil {
		t.Fatal(err)
	}
	want := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	got, err := ptr.Bytecode()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Fatalf("bytecode % x, want % x", got, want)
	}

	ptr.unplace()
	if ptr.IsPlaced() || ptr.IsResolved() {
		t.Fatal("unplace kept resolution state")
	}
}

func TestSectionNames(t *testing.T) {
	for _, s := range Sections {
		got, ok := SectionFromName("." + s.String())
		if !ok || got != s {
			t.Errorf("%s does not round trip", s)
		}
	}
	if SectionBss.IsEmitted() {
		t.Error("bss must not be emitted")
	}
}

func TestTokenLinkedTwice(t *testing.T) {
	tok := NewCodeToken([]byte{1})
	if err := tok.place(4); err != nil {
		t.Fatal(err)
	}
	if err := tok.place(5); errors.Cause(err) != ErrTokenReused {
		t.Fatalf("second place: %v", err)
	}
	if tok.Addr() != 4 {
		t.Fatalf("address moved to %d", tok.Addr())
	}
	if err := tok.resolve(8); err == nil {
		t.Fatal("resolved a code token")
	}

	ptr := NewPointerToken("x")
	if err := ptr.resolve(1); err != nil {
		t.Fatal(err)
	}
	if err := ptr.resolve(2); errors.Cause(err) != ErrTokenReused {
		t.Fatalf("second resolve: %v", err)
	}
}
