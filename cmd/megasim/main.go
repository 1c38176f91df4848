// Command megasim assembles an ATmega16A-class source file and runs it
// on the naive simulator, printing its decoded program image followed
// by a PC/PORTA trace.
package main

import (
	"fmt"
	"os"

	"github.com/avrtools/megasim/pkg/asm"
	"github.com/avrtools/megasim/pkg/chip"
	"github.com/spf13/cobra"
)

// portaAddr is the RAM address of PORTA (I/O address 0x1B + IOOffset).
const portaAddr = 59

func main() {
	var steps int
	var clockHz uint64

	rootCmd := &cobra.Command{
		Use:   "megasim <source>",
		Short: "Assemble and simulate an ATmega16A-class program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], steps, clockHz)
		},
	}

	rootCmd.Flags().IntVar(&steps, "steps", 10000, "maximum number of instructions to execute")
	rootCmd.Flags().Uint64Var(&clockHz, "clock", 8_000_000, "simulated clock frequency in Hz")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, steps int, clockHz uint64) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	code, data, err := compile(string(src))
	if err != nil {
		return err
	}

	fmt.Print(asm.DumpProgram(code, data))
	fmt.Println()

	c := chip.New(clockHz)
	if err := c.ApplyCode(code); err != nil {
		return fmt.Errorf("loading code segment: %w", err)
	}
	if err := c.ApplyData(data); err != nil {
		return fmt.Errorf("loading data segment: %w", err)
	}

	for i := 0; i < steps; i++ {
		ok, err := c.Step()
		if err != nil {
			return fmt.Errorf("step %d at pc=%d: %w", i, c.PC, err)
		}
		if !ok {
			break
		}
		fmt.Printf("pc=%d porta=%d\n", c.PC, c.RAMByte(portaAddr))
	}

	return nil
}

// compile wraps asm.Compile, converting its panics on malformed source
// into an error the CLI can report without a stack trace.
func compile(source string) (code asm.CodeImage, data asm.DataImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("assembling source: %v", r)
		}
	}()
	code, data = asm.Compile(source)
	return code, data, nil
}
