package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thelolagemann/sm83/internal/machine"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The program image to load (.gz, .xz, .zip and .7z are decompressed)")
	loadAt := flag.String("at", "0000", "The address to load the program at, in hex")
	startAt := flag.String("pc", "", "The initial program counter, in hex (defaults to -at)")
	stackAt := flag.String("sp", "FFFE", "The initial stack pointer, in hex")
	steps := flag.Int("steps", 1_000_000, "The maximum number of instructions to execute, 0 for no limit")
	trace := flag.Bool("trace", false, "Print every instruction before it is executed")
	debug := flag.Bool("debug", false, "Log the registers after every instruction")
	stateFile := flag.String("state", "", "A save state to load before running")
	saveFile := flag.String("save", "", "Save the state to this file on exit")
	breakAt := flag.String("break", "", "Comma separated breakpoints, in hex")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewDebug()
	}

	if *romFile == "" && *stateFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	at, err := parseAddress(*loadAt)
	if err != nil {
		logger.Fatalf("-at: %v", err)
	}
	pc := at
	if *startAt != "" {
		if pc, err = parseAddress(*startAt); err != nil {
			logger.Fatalf("-pc: %v", err)
		}
	}
	sp, err := parseAddress(*stackAt)
	if err != nil {
		logger.Fatalf("-sp: %v", err)
	}

	opts := []machine.Opt{
		machine.WithLogger(logger),
		machine.StartAt(pc),
		machine.WithStack(sp),
		machine.SerialOutput(os.Stdout),
	}
	if *romFile != "" {
		rom, err := utils.LoadFile(*romFile)
		if err != nil {
			logger.Fatalf("could not load %s: %v", *romFile, err)
		}
		opts = append(opts, machine.WithProgram(rom, at))
	}
	if *breakAt != "" {
		for _, s := range strings.Split(*breakAt, ",") {
			addr, err := parseAddress(s)
			if err != nil {
				logger.Fatalf("-break: %v", err)
			}
			opts = append(opts, machine.Breakpoint(addr))
		}
	}
	if *trace {
		opts = append(opts, machine.Trace(os.Stderr))
	}
	if *debug {
		opts = append(opts, machine.Debug())
	}

	m := machine.New(opts...)
	if *stateFile != "" {
		if err := m.LoadState(*stateFile); err != nil {
			logger.Fatalf("%v", err)
		}
	}

	_, runErr := m.Run(*steps)

	c := m.CPU
	fmt.Printf("\nstopped: %s\n", m.Reason())
	fmt.Printf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X IME:%t\n",
		c.A, c.F(), c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC, c.IME)
	clocks := m.Clocks()
	fmt.Printf("steps: %d, cycles: %d M / %d T\n", m.Steps(), clocks.M, clocks.T)

	if *saveFile != "" {
		if err := m.SaveState(*saveFile); err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}
	if runErr != nil {
		os.Exit(1)
	}
}

// parseAddress parses a 16-bit hex address, with or without a $ or 0x
// prefix.
func parseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}
