package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/strview"
)

var parseType string

var parsers = map[string]func(strview.View) (any, error){
	"int":  func(v strview.View) (any, error) { return v.ToInt() },
	"uint": func(v strview.View) (any, error) { return v.ToUint() },
	"i8":   func(v strview.View) (any, error) { return v.ToI8() },
	"u8":   func(v strview.View) (any, error) { return v.ToU8() },
	"i16":  func(v strview.View) (any, error) { return v.ToI16() },
	"u16":  func(v strview.View) (any, error) { return v.ToU16() },
	"i32":  func(v strview.View) (any, error) { return v.ToI32() },
	"u32":  func(v strview.View) (any, error) { return v.ToU32() },
	"i64":  func(v strview.View) (any, error) { return v.ToI64() },
	"u64":  func(v strview.View) (any, error) { return v.ToU64() },
	"f32":  func(v strview.View) (any, error) { return v.ToF32() },
	"f64":  func(v strview.View) (any, error) { return v.ToF64() },
}

func init() {
	cmd := newParseCmd()
	cmd.Flags().StringVarP(&parseType, "type", "t", "int", "Target type: "+strings.Join(parserNames(), ", "))
	rootCmd.AddCommand(cmd)
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse text as a number",
		Long: `The parse command converts its argument to the numeric type chosen
with --type. Floats that overflow print as ±Inf.

Example:
  heapcore parse --type u8 255
  heapcore parse --type f64 1e400`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, ok := parsers[parseType]
			if !ok {
				return fmt.Errorf("unknown type %q (want one of %s)", parseType, strings.Join(parserNames(), ", "))
			}
			return withText(args[0], func(_ *heapcore.Heap, text *bytebuf.Buffer) error {
				n, err := parse(text.AsView())
				if err != nil {
					return err
				}
				if jsonOut {
					return printJSON(cmd.OutOrStdout(), map[string]any{"type": parseType, "value": n})
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
				return err
			})
		},
	}
}

func parserNames() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
