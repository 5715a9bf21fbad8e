package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"m7s.live/mp4vtt/pkg/box"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "List the top level boxes of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			out := cmd.OutOrStdout()
			return box.ReadBoxes(f, func(b box.IBox, header *box.BasicBox) error {
				if b == nil {
					ctx.logger.Debug("skip unknown box", "type", header.Type.String(), "offset", header.Offset, "size", header.Size)
					return nil
				}
				if asJSON {
					js, err := box.ToJSON(b)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(out, js)
					return err
				}
				_, err := fmt.Fprintf(out, "%s offset=%d size=%d %s\n", header.Type, header.Offset, header.Size, b.Summary())
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print each box as JSON")
	return cmd
}
