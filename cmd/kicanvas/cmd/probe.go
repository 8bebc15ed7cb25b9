package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/chewxy/sexp"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <schematic_file>",
	Short: "Low-level s-expression diagnostics",
	Long: `Parse a file with a generic s-expression parser and report what it
finds. Useful when a schematic fails to load and the question is
whether the file is malformed or the schematic reader is at fault.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	filename := args[0]
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	fmt.Printf("File size: %d bytes (%.2f MB)\n", info.Size(), float64(info.Size())/1024/1024)

	fmt.Println("\nWhole-file parse:")
	sexps, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else {
		fmt.Printf("  parsed %d top-level s-expressions\n", len(sexps))
		if len(sexps) > 0 && !sexps[0].IsLeaf() {
			fmt.Printf("  first expression has %d leaves\n", sexps[0].LeafCount())
		}
	}

	if verbose {
		if _, err := file.Seek(0, 0); err != nil {
			return err
		}
		fmt.Println("\nStreaming parse:")
		parser := sexp.NewParser(file, false)
		count := 0
		for s := range parser.Output {
			if s != nil {
				count++
			}
		}
		fmt.Printf("  received %d s-expressions\n", count)
	}

	// A truncated head still parses if cut at a closing paren, which
	// separates encoding problems from errors deep in the file.
	if err == nil {
		return nil
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	buf := make([]byte, 100000)
	n, _ := file.Read(buf)
	content := string(buf[:n])
	if i := strings.LastIndex(content, ")"); i > 0 {
		content = content[:i+1]
	}
	fmt.Println("\nHead-only parse (first 100KB):")
	head, err := sexp.ParseString(content)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else {
		fmt.Printf("  parsed %d s-expressions\n", len(head))
	}
	return nil
}
