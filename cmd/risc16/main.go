package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/risclab/risc16/cpu"
	"github.com/risclab/risc16/emulator"
	"github.com/risclab/risc16/server"
)

func main() {
	var compile string
	var variantName string
	var trace string
	var listen string
	var maxCycles int
	var hex bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&variantName, "variant", "embedded", "encoding variant (compact or embedded)")
	flag.StringVar(&trace, "t", "", "write the JSON cycle trace to a file")
	flag.StringVar(&listen, "l", "", "listen address for the trace service")
	flag.IntVar(&maxCycles, "m", 0, "cycle cap (0 for the default)")
	flag.BoolVar(&hex, "x", false, "print the hex image, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var variant cpu.Variant
	switch variantName {
	case "compact":
		variant = cpu.VARIANT_COMPACT
	case "embedded":
		variant = cpu.VARIANT_EMBEDDED
	default:
		log.Fatalf("%v: unknown variant '%v'", os.Args[0], variantName)
	}

	if len(listen) != 0 {
		srv := &server.Server{
			Verbose:   verbose,
			Variant:   variant,
			MaxCycles: maxCycles,
		}
		log.Fatal(srv.ListenAndServe(listen))
	}

	if len(compile) == 0 {
		log.Fatalf("%v: no .asm file given", os.Args[0])
	}

	emu, err := emulator.New(variant, &cpu.Program{Variant: variant})
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	emu.Verbose = verbose

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := emu.Assembler()
	asm.Verbose = verbose
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if hex {
		fmt.Println(prog.Hex())
		return
	}

	err = emu.Load(variant, prog)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Run(maxCycles)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if len(trace) != 0 {
		ouf, err := os.Create(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer ouf.Close()

		err = emu.WriteTrace(ouf)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
	}

	fmt.Println(emu.Engine.String())
}
