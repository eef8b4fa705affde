package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
	"github.com/pavanmanishd/heapcore/wide"
)

func init() {
	rootCmd.AddCommand(newUTF16Cmd())
}

func newUTF16Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "utf16 <text>",
		Short: "Print the UTF-16 code units of a string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withText(args[0], func(h *heapcore.Heap, text *bytebuf.Buffer) error {
				enc, err := wide.ToUTF16(h, text.AsView())
				if err != nil {
					return err
				}
				defer enc.Free()

				units := wide.Units(enc)
				if jsonOut {
					return printJSON(cmd.OutOrStdout(), units)
				}
				hex := make([]string, len(units))
				for i, u := range units {
					hex[i] = fmt.Sprintf("%04x", u)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(hex, " "))
				return err
			})
		},
	}
}
