package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/bytebuf"
)

func init() {
	rootCmd.AddCommand(newCharsCmd(), newSubstrCmd())
}

func newCharsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chars <text>",
		Short: "List the characters of a string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withText(args[0], func(_ *heapcore.Heap, text *bytebuf.Buffer) error {
				v := text.AsView()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "bytes: %d chars: %d\n", v.ByteLen(), v.Len())
				for i := range v.Len() {
					r := v.CharAt(i)
					fmt.Fprintf(out, "%4d  %q  U+%04X\n", i, r, r)
				}
				return nil
			})
		},
	}
}

func newSubstrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "substr <text> <start> <end>",
		Short: "Print the byte range [start, end) of a string",
		Long: `The substr command slices its argument by byte offsets. Offsets
that fall outside the text or split a character are faults.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}
			end, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid end: %w", err)
			}
			return withText(args[0], func(_ *heapcore.Heap, text *bytebuf.Buffer) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), text.AsView().Substring(start, end))
				return err
			})
		},
	}
}
