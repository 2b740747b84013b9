package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/backup"
	"github.com/papapumpkin/asperge/internal/crypt"
	"github.com/papapumpkin/asperge/internal/loader"
	"github.com/papapumpkin/asperge/internal/ui"
)

var extractCmd = &cobra.Command{
	Use:   "extract <backup> <out>",
	Short: "Unpack a backup file into a folder of section files",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().Bool("no-decrypt", false, "write the sections exactly as packed")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	printer := ui.New(false)
	noDecrypt, _ := cmd.Flags().GetBool("no-decrypt")

	raw, err := backup.Unpack(args[0])
	if err != nil {
		return err
	}
	if !noDecrypt {
		dec, err := crypt.DecryptProject(raw)
		if err != nil {
			return err
		}
		raw = dec.Bytes()
	}
	if err := loader.WriteFolder(raw, args[1]); err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("extracted %d sections to %s", len(raw), args[1]))
	return nil
}
