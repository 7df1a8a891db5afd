// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	log.SetFlags(0)

	err := newRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadProgram reads a program in the LS-8 text format.
func loadProgram(path string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	ld := &cpu.Loader{Verbose: verbose}
	prog, err = ld.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

func newRootCommand() *cobra.Command {
	var trace bool
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ls8 FILE",
		Short: "LS-8 8-bit virtual CPU",
		Long: "Run an LS-8 program: a text file of one binary byte per line,\n" +
			"with '#' comments.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid; errors from here on are not usage errors.
			cmd.SilenceUsage = true

			prog, err := loadProgram(args[0], verbose)
			if err != nil {
				return err
			}

			emu := emulator.NewEmulator()
			emu.Verbose = verbose
			emu.Program = prog
			emu.Console.Output = cmd.OutOrStdout()
			if trace {
				emu.Cpu.Trace = cmd.OutOrStdout()
			}

			err = emu.Reset()
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err = emu.Run(ctx)
			if err != nil {
				if verbose {
					log.Printf("cpu state:\n%v", emu.Cpu)
				}
				return fmt.Errorf("%v: %w", args[0], err)
			}

			if verbose {
				log.Printf("%v: halted after %d instructions", args[0], emu.Ticks())
			}

			return nil
		},
	}
	rootCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Trace each instruction")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	rootCmd.AddCommand(newAsmCommand(&verbose), newDisasmCommand(&verbose))

	return rootCmd
}

func newAsmCommand(verbose *bool) *cobra.Command {
	var output string
	var defines []string

	asmCmd := &cobra.Command{
		Use:   "asm SOURCE",
		Short: "Assemble mnemonic source into the LS-8 text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inf, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer inf.Close()

			asm := &cpu.Assembler{Verbose: *verbose}
			for equ, value := range cpu.NewCpu().Defines() {
				asm.Predefine(equ, value)
			}
			for _, define := range defines {
				equ, value, ok := strings.Cut(define, "=")
				if !ok {
					return fmt.Errorf("-D %v: expected NAME=VALUE", define)
				}
				asm.Predefine(equ, value)
			}

			prog, err := asm.Parse(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			ouf := cmd.OutOrStdout()
			if output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				ouf = file
			}

			_, err = prog.WriteTo(ouf)
			return err
		},
	}
	asmCmd.Flags().StringVarP(&output, "output", "o", "-", "Output file")
	asmCmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "Predefine an equate, NAME=VALUE")

	return asmCmd
}

func newDisasmCommand(verbose *bool) *cobra.Command {
	disasmCmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "List an LS-8 program as mnemonics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := loadProgram(args[0], *verbose)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "; %v: %d bytes, blake2b %x\n", args[0], prog.Size(), prog.Digest())
			for addr, code := range cpu.Disassemble(prog.Binary()) {
				fmt.Fprintf(out, "%02x: %-12v ; %08b\n", addr, code, code.Bytes())
			}

			return nil
		},
	}

	return disasmCmd
}
