package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/gbarletta/varch-vm/emulator"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (lf *listFlag) String() string {
	return strings.Join(*lf, ",")
}

func (lf *listFlag) Set(value string) error {
	*lf = append(*lf, value)
	return nil
}

// splitLoad splits a file@offset load request.
func splitLoad(load string) (path string, offset string) {
	n := strings.LastIndex(load, "@")
	if n < 0 {
		return load, "0"
	}

	return load[:n], load[n+1:]
}

func main() {
	var size int
	var loads listFlag
	var start string
	var verbose bool
	var limit int
	var expects listFlag
	var dump string
	var defines bool

	flag.IntVar(&size, "m", emulator.MEMORY_SIZE, "Memory size in bytes")
	flag.Var(&loads, "l", "Image to load, as file[@offset] (repeatable)")
	flag.StringVar(&start, "s", "0", "Start address expression")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "n", 0, "Maximum ticks to execute (0 is unlimited)")
	flag.Var(&expects, "e", "Expression that must be true after halt (repeatable)")
	flag.StringVar(&dump, "d", "", "Dump memory after halt to file ('-' for stdout)")
	flag.BoolVar(&defines, "D", false, "List defines, do not execute")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu, err := emulator.NewEmulator(size)
	if err != nil {
		log.Fatalf("%v: -m %v: %v", os.Args[0], size, err)
	}
	emu.Verbose = verbose

	if defines {
		all := maps.Collect(emu.Defines())
		for _, key := range slices.Sorted(maps.Keys(all)) {
			fmt.Printf("%v=%v\n", key, all[key])
		}
		return
	}

	for _, load := range loads {
		path, expr := splitLoad(load)
		offset, err := emu.Address(expr)
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
		err = emu.LoadFile(path, int(offset))
		if err != nil {
			log.Fatalf("%v: %v", load, err)
		}
	}

	pc, err := emu.Address(start)
	if err != nil {
		log.Fatalf("-s: %v", err)
	}

	emu.Start(pc)
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			fmt.Fprint(os.Stderr, emu.String())
			log.Fatal(err)
		}
		if limit > 0 && emu.Ticks >= limit {
			fmt.Fprint(os.Stderr, emu.String())
			log.Fatalf("tick limit %d reached", limit)
		}
	}

	if verbose {
		fmt.Fprint(os.Stderr, emu.String())
	}

	switch dump {
	case "":
	case "-":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			err = emu.Hexdump(os.Stdout)
		} else {
			err = emu.Dump(os.Stdout)
		}
	default:
		err = emu.DumpFile(dump)
	}
	if err != nil {
		log.Fatalf("%v: %v", dump, err)
	}

	failed := false
	for _, expect := range expects {
		err = emu.Expect(expect)
		if err != nil {
			log.Printf("%v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
