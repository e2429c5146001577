package linker

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/hcyang1106/haxld/pkg/utils"
	"github.com/pkg/errors"
)

// largest single reservation a unit may ask for
const MaxReserve = 1 << 32

type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

func LoadUnit(filename string) (*Unit, error) {
	file, err := NewFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseUnit(file.Name, file.Content)
}

// ParseUnit turns unit source into a token stream per section. Items before
// any section directive go to text.
func ParseUnit(name string, content []byte) (*Unit, error) {
	unit := NewUnit(name)
	section := SectionText

	for i, line := range strings.Split(string(content), "\n") {
		fail := func(format string, args ...any) error {
			return &SyntaxError{File: name, Line: i + 1, Msg: fmt.Sprintf(format, args...)}
		}

		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}

		// labels may share a line with an item
		for {
			idx := strings.IndexByte(line, ':')
			if idx <= 0 || !isIdent(line[:idx]) {
				break
			}
			unit.Append(section, NewLabelToken(line[:idx]))
			line = strings.TrimSpace(line[idx+1:])
		}
		if line == "" {
			continue
		}

		if line[0] == '.' {
			s, ok := SectionFromName(line)
			if !ok {
				return nil, fail("unknown section %s", line)
			}
			section = s
			continue
		}

		op, args := line, ""
		if idx := strings.IndexFunc(line, unicode.IsSpace); idx > 0 {
			op, args = line[:idx], strings.TrimSpace(line[idx:])
		}
		switch strings.ToLower(op) {
		case "code":
			bs, err := parseBytes(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			if len(bs) == 0 {
				return nil, fail("code requires at least one byte")
			}
			unit.Append(section, NewCodeToken(bs))
		case "db":
			bs, err := parseBytes(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			if len(bs) == 0 {
				return nil, fail("db requires at least one argument")
			}
			unit.Append(section, NewDataToken(bs))
		case "dw":
			w, err := parseWord(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			buf := bytes.Buffer{}
			utils.Write[uint64](&buf, w)
			unit.Append(section, NewDataToken(buf.Bytes()))
		case "resb":
			n, err := parseWord(args)
			if err != nil {
				return nil, fail("%v", err)
			}
			if n > MaxReserve {
				return nil, fail("resb size %d exceeds %d", n, uint64(MaxReserve))
			}
			unit.Append(section, NewReserveToken(n))
		case "ptr":
			if !isIdent(args) {
				return nil, fail("ptr requires a label name")
			}
			unit.Append(section, NewPointerToken(args))
		default:
			return nil, fail("unknown opcode %s", op)
		}
	}

	return unit, nil
}

func stripComment(line string) string {
	inString := false
	escape := false
	for i, ru := range line {
		switch {
		case escape:
			escape = false
		case inString && ru == '\\':
			escape = true
		case ru == '"':
			inString = !inString
		case ru == ';' && !inString:
			return line[:i]
		}
	}
	return line
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, ru := range s {
		if ru == '_' || unicode.IsLetter(ru) || (i > 0 && (unicode.IsDigit(ru) || ru == '.')) {
			continue
		}
		return false
	}
	return true
}

// unsigned literals only: decimal, 0x, 0o, 0b, $ and the other prefixes numparse knows
func parseWord(s string) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		return 0, errors.Errorf("negative number %q", s)
	}
	v, err := utils.ParseUint(s)
	if err != nil {
		return 0, errors.Errorf("bad number %q", s)
	}
	return v, nil
}

// comma or space separated byte values and double-quoted strings
func parseBytes(args string) ([]byte, error) {
	out := []byte{}
	num := strings.Builder{}
	inString := false
	escape := false

	flush := func() error {
		if num.Len() == 0 {
			return nil
		}
		v, err := parseWord(num.String())
		if err != nil {
			return err
		}
		if v > 0xFF {
			return errors.Errorf("byte value larger than 0xFF: %s", num.String())
		}
		out = append(out, byte(v))
		num.Reset()
		return nil
	}

	for _, ru := range args {
		switch {
		case inString && escape:
			switch ru {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '0':
				out = append(out, 0)
			default:
				out = append(out, string(ru)...)
			}
			escape = false
		case inString && ru == '\\':
			escape = true
		case ru == '"':
			if err := flush(); err != nil {
				return nil, err
			}
			inString = !inString
		case inString:
			out = append(out, string(ru)...)
		case ru == ',' || unicode.IsSpace(ru):
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			num.WriteRune(ru)
		}
	}
	if inString {
		return nil, errors.New("unterminated string")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
