package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/japanoise/numparse"
)

func Fatal(v any) {
	fmt.Printf("fatal: %v\n", v)
	if os.Getenv("HAXLD_TRACEBACK") != "" {
		debug.PrintStack()
	}
	os.Exit(1)
}

func MustNo(err error) {
	if err != nil {
		Fatal(err)
	}
}

// the vm is little endian, words are 8 bytes
func Read[T any](content []byte, val *T) error {
	reader := bytes.NewReader(content)
	return binary.Read(reader, binary.LittleEndian, val)
}

func Write[T any](buf *bytes.Buffer, val T) {
	err := binary.Write(buf, binary.LittleEndian, val)
	MustNo(err)
}

// o => -o
// stack => -stack, --stack
func AddDashes(option string) []string {
	res := []string{}

	if len(option) == 1 {
		res = append(res, "-"+option)
	} else {
		res = append(res, "-"+option, "--"+option)
	}

	return res
}

func RemovePrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return strings.TrimPrefix(s, prefix), true
	}
	return s, false
}

// numparse reads a lone "0" as an empty octal literal
func ParseUint(s string) (uint64, error) {
	if s == "0" {
		return 0, nil
	}
	return numparse.UNumParse(s)
}
