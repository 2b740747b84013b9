package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/decompiler"
	"github.com/papapumpkin/asperge/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <path>",
	Short: "Browse the generated files without writing them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.close()

		templatesPath, _ := cmd.Flags().GetString("templates")
		opts, err := s.options(templatesPath)
		if err != nil {
			return err
		}
		p, err := s.load(args[0])
		if err != nil {
			return err
		}
		res, err := decompiler.Run(p, opts)
		if err != nil {
			return err
		}
		title := p.Meta.AppName
		if title == "" {
			title = p.Meta.PackageName
		}
		return tui.Run(title, res)
	},
}

func init() {
	browseCmd.Flags().String("templates", "", "TOML file extending the block templates")
	rootCmd.AddCommand(browseCmd)
}
