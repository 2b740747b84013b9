package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/crypt"
	"github.com/papapumpkin/asperge/internal/ui"
)

// errDeclined is returned when the user refuses to replace an output file.
var errDeclined = errors.New("not overwriting existing output")

var decryptCmd = &cobra.Command{
	Use:   "decrypt <file> <out>",
	Short: "Decrypt a single section file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return decryptFile(ui.New(false), args[0], args[1], force, cmd.InOrStdin())
	},
}

func init() {
	decryptCmd.Flags().BoolP("force", "f", false, "overwrite the output without asking")
	rootCmd.AddCommand(decryptCmd)
}

// decryptFile writes the plaintext of the section file in to out. Input that
// is already text is copied as is. An existing out is replaced only when
// forced or confirmed on stdin.
func decryptFile(printer *ui.Printer, in, out string, force bool, stdin io.Reader) error {
	buf, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}
	text := string(buf)
	if crypt.LooksEncrypted(buf) {
		if text, err = crypt.Decrypt(buf); err != nil {
			return err
		}
	} else {
		printer.Warn(fmt.Sprintf("%s is already plaintext, copying it unchanged", in))
	}

	if info, err := os.Stat(out); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", out)
		}
		if !force && !printer.Confirm(fmt.Sprintf("%s already exists, overwrite?", out), stdin) {
			return errDeclined
		}
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	printer.Info(fmt.Sprintf("decrypted %s to %s", in, out))
	return nil
}
