// Copyright 2025, 0xd1rac

package main

import (
	"flag"
	"log"
	"os"

	"github.com/0xd1rac/cpu-n-chill/asm"
	"github.com/0xd1rac/cpu-n-chill/emulator"
)

func main() {
	var compile string
	var output string
	var raw bool
	var execute bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&output, "o", "-", "Output listing")
	flag.BoolVar(&raw, "b", false, "Write a binary image instead of hex text")
	flag.BoolVar(&execute, "x", false, "Execute the program after assembly")
	flag.IntVar(&limit, "l", 0, "Execution tick budget (0 = default)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: no input file", os.Args[0])
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	prog, errs := assembler.Assemble(inf)
	if len(errs) != 0 {
		for _, err := range errs {
			log.Printf("%v: %v", compile, err)
		}
		os.Exit(1)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if raw {
		_, err = ouf.Write(prog.Binary())
	} else {
		err = prog.WriteHex(ouf)
	}
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if execute {
		machine := &emulator.Machine{Verbose: verbose}
		machine.Load(prog)
		if err := machine.Run(limit); err != nil {
			log.Fatal(err)
		}
		for n, value := range machine.Register {
			if value != 0 {
				log.Printf("r%d = %#x", n, value)
			}
		}
	}
}
