package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hcyang1106/haxld/pkg/linker"
	"github.com/hcyang1106/haxld/pkg/utils"
)

var version string

// functions hand their errors back, main reports them
func main() {
	core := linker.NewCore()
	l := linker.NewLinker(core)
	l.Trace = os.Stdout

	// remaining contains unit files, in load order
	remaining := parseArgs(l)
	if l.Args.Quiet {
		l.Trace = io.Discard
	}
	if len(remaining) == 0 {
		utils.Fatal("no input files")
	}

	for _, filename := range remaining {
		utils.MustNo(l.LoadUnit(filename))
	}

	utils.MustNo(l.Link(l.Args.Output))
	os.Exit(0)
}

func parseArgs(l *linker.Linker) []string {
	args := os.Args[1:]

	arg := ""
	readArg := func(name string) bool {
		for _, opt := range utils.AddDashes(name) {
			if args[0] == opt {
				if len(args) == 1 {
					utils.Fatal(fmt.Sprintf("option -%s: argument missing", name))
				}
				arg = args[1]
				args = args[2:]
				return true
			}

			prefix := opt
			if len(name) > 1 {
				prefix += "="
			}
			if rest, ok := utils.RemovePrefix(args[0], prefix); ok {
				arg = rest
				args = args[1:]
				return true
			}
		}
		return false
	}

	readFlag := func(name string) bool {
		for _, opt := range utils.AddDashes(name) {
			if args[0] == opt {
				args = args[1:]
				return true
			}
		}
		return false
	}

	readSize := func() uint64 {
		n, err := utils.ParseUint(arg)
		if err != nil {
			utils.Fatal(fmt.Sprintf("invalid size: %s", arg))
		}
		return n
	}

	remaining := make([]string, 0)
	for len(args) > 0 {
		if readFlag("help") {
			fmt.Printf("usage: %s [-o output] [--stack size] [--reserved size] [-q] unit...\n", os.Args[0])
			os.Exit(0)
		}

		if readArg("o") || readArg("output") {
			l.Args.Output = arg
		} else if readFlag("v") || readFlag("version") {
			fmt.Printf("haxld %s\n", version)
			os.Exit(0)
		} else if readArg("stack") {
			l.SetStack(readSize())
		} else if readArg("reserved") {
			l.Core.ReservedMem = readSize()
		} else if readFlag("q") || readFlag("quiet") {
			l.Args.Quiet = true
		} else {
			if strings.HasPrefix(args[0], "-") {
				utils.Fatal(fmt.Sprintf("unknown command line option: %s", args[0]))
			}
			remaining = append(remaining, args[0])
			args = args[1:]
		}
	}

	return remaining
}
