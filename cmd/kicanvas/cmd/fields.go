package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

var fieldsShowHidden bool

var fieldsCmd = &cobra.Command{
	Use:   "fields <schematic_file> [component]",
	Short: "Dump computed text field placement",
	Long: `Show where each symbol text field actually lands on the schematic.

For every field the command prints the displayed text, the resolved
absolute position, the rotation at which the glyphs are drawn, the
effective justification after mirror and rotation are applied, and the
axis-aligned bounding box. Hidden fields are skipped unless --hidden
is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsShowHidden, "hidden", false, "include hidden fields")
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	if len(args) >= 2 {
		sym := sch.GetSymbol(args[1])
		if sym == nil {
			return fmt.Errorf("component '%s' not found", args[1])
		}
		dumpSymbolFields(sym)
		return nil
	}

	for i := range sch.Symbols {
		dumpSymbolFields(&sch.Symbols[i])
	}

	if len(sch.Texts) > 0 {
		fmt.Println("Free text:")
		for i := range sch.Texts {
			dumpField(sch.Texts[i].Field())
		}
	}
	return nil
}

func dumpSymbolFields(sym *schematic.Symbol) {
	ref := sym.Reference()
	if ref == "" {
		ref = sym.LibID
	}
	fmt.Printf("%s at (%.2f, %.2f)", ref, sym.Position.X, sym.Position.Y)
	if sym.Angle != 0 {
		fmt.Printf(" rotation %.0f", sym.Angle)
	}
	if sym.Mirror != "" {
		fmt.Printf(" mirror %s", sym.Mirror)
	}
	fmt.Println()

	for _, field := range sym.Fields() {
		if field.Hidden() && !fieldsShowHidden {
			continue
		}
		if field.ShownText() == "" {
			continue
		}
		dumpField(field)
	}
	fmt.Println()
}

func dumpField(field *schematic.Field) {
	name := field.Key
	if name == "" {
		name = "(text)"
	}
	pos := field.Position()
	fmt.Printf("  %-12s %q\n", name, field.ShownText())
	fmt.Printf("    position: (%.3f, %.3f)  rotation: %.0f\n", pos.X, pos.Y, field.DrawRotation())
	fmt.Printf("    justify: %s %s", field.EffectiveHorizJustify(), field.EffectiveVertJustify())
	if field.Hidden() {
		fmt.Print("  [hidden]")
	}
	fmt.Println()
	if verbose {
		bbox := field.BoundingBox()
		fmt.Printf("    bbox: (%.3f, %.3f) - (%.3f, %.3f)\n",
			bbox.Min.X, bbox.Min.Y, bbox.Max.X, bbox.Max.Y)
	}
}
