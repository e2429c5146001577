package linker

import (
	"bytes"
	"testing"
)

func TestParseUnit(t *testing.T) {
	src := `; prologue
main:   code 0x01 0x02   ; first
        ptr buf
.data
msg:    db "ok\n", 0
count:  dw 0x10
.bss
buf:    resb 64
`
	unit, err := ParseUnit("prog.hs", []byte(src))
	if err != nil {
		t.Fatal(err)
	}

	text := unit.Streams[SectionText]
	if len(text) != 3 {
		t.Fatalf("text has %d tokens", len(text))
	}
	if text[0].Kind != TokenKindLabel || text[0].Name != "main" {
		t.Errorf("text[0] = %s", text[0])
	}
	if !bytes.Equal(text[1].Content, []byte{1, 2}) {
		t.Errorf("text[1] = %s", text[1])
	}
	if text[2].Kind != TokenKindPointer || text[2].Name != "buf" || text[2].Size() != WordSize {
		t.Errorf("text[2] = %s", text[2])
	}

	data := unit.Streams[SectionData]
	if len(data) != 4 {
		t.Fatalf("data has %d tokens", len(data))
	}
	if !bytes.Equal(data[1].Content, []byte("ok\n\x00")) {
		t.Errorf("msg = %q", data[1].Content)
	}
	if !bytes.Equal(data[3].Content, []byte{0x10, 0, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("count = % x", data[3].Content)
	}

	bss := unit.Streams[SectionBss]
	if len(bss) != 2 || bss[1].Size() != 64 {
		t.Fatalf("bss = %v", bss)
	}
	if got, err := bss[1].Bytecode(); err != nil || len(got) != 64 {
		t.Errorf("reserve bytecode is %d bytes, %v", len(got), err)
	}
}

func TestParseUnitCurrentSection(t *testing.T) {
	unit, err := ParseUnit("u", []byte(".data\ndb 1\n.text\ncode 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	unit.SetSection(SectionData)
	if toks := unit.Tokens(); len(toks) != 1 || toks[0].Content[0] != 1 {
		t.Fatalf("data tokens %v", toks)
	}
	unit.SetSection(SectionText)
	if toks := unit.Tokens(); len(toks) != 1 || toks[0].Content[0] != 2 {
		t.Fatalf("text tokens %v", toks)
	}
}

func TestParseUnitErrors(t *testing.T) {
	tests := []struct {
		src  string
		line int
	}{
		{"code 1\nbogus 2\n", 2},
		{".rodata\n", 1},
		{"\n\ndb 0x100\n", 3},
		{"db \"open\n", 1},
		{"ptr 1abc\n", 1},
		{"dw nope\n", 1},
		{"code\n", 1},
		{".bss\nresb -1\n", 2},
		{"resb 0x100000001\n", 1},
		{"dw -5\n", 1},
		{"db 1, -1\n", 1},
	}

	for _, tt := range tests {
		_, err := ParseUnit("bad.hs", []byte(tt.src))
		serr, ok := err.(*SyntaxError)
		if !ok {
			t.Errorf("%q: err = %v, want syntax error", tt.src, err)
			continue
		}
		if serr.Line != tt.line || serr.File != "bad.hs" {
			t.Errorf("%q: error at %s:%d, want line %d", tt.src, serr.File, serr.Line, tt.line)
		}
	}
}

func TestLoadUnitMissingFile(t *testing.T) {
	if _, err := LoadUnit(t.TempDir() + "/missing.hs"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseUnitNumberForms(t *testing.T) {
	unit, err := ParseUnit("n", []byte("db 0, 10, 0x0a, 0b1010, 0o12, $0a\n.bss\nresb 0x100000000\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := unit.Streams[SectionText][0].Content; !bytes.Equal(got, []byte{0, 10, 10, 10, 10, 10}) {
		t.Fatalf("db = % x", got)
	}
	if got := unit.Streams[SectionBss][0].Size(); got != MaxReserve {
		t.Fatalf("resb = %d", got)
	}
}
