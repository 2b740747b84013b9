package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/decompiler"
)

var generateCmd = &cobra.Command{
	Use:   "generate <path> <out>",
	Short: "Generate layouts and activity source from a project",
	Long: "Generate decompiles a backup file or a section folder into <out>. " +
		"Nothing is written unless every selected screen renders.",
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	addSelectionFlags(generateCmd)
	generateCmd.Flags().BoolP("force", "f", false, "replace an existing output directory")
	rootCmd.AddCommand(generateCmd)
}

// addSelectionFlags registers the flags choosing what a run renders.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("layout-only", false, "only generate XML layouts")
	cmd.Flags().Bool("java-only", false, "only generate activity source")
	cmd.Flags().StringArray("layout", nil, "generate only this layout (repeatable)")
	cmd.Flags().StringArray("activity", nil, "generate only this activity (repeatable)")
	cmd.Flags().String("templates", "", "TOML file extending the block templates")
	cmd.Flags().String("trace", "", "append a JSONL trace of the run to this file")
}

// selection copies the selection flags into opts.
func selection(cmd *cobra.Command, opts decompiler.Options) decompiler.Options {
	opts.LayoutOnly, _ = cmd.Flags().GetBool("layout-only")
	opts.JavaOnly, _ = cmd.Flags().GetBool("java-only")
	opts.Layouts, _ = cmd.Flags().GetStringArray("layout")
	opts.Activities, _ = cmd.Flags().GetStringArray("activity")
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tracePath, _ := cmd.Flags().GetString("trace")
	s, err := newSession(tracePath)
	if err != nil {
		return err
	}
	defer s.close()

	templatesPath, _ := cmd.Flags().GetString("templates")
	force, _ := cmd.Flags().GetBool("force")
	return s.generate(cmd, args[0], args[1], templatesPath, force)
}

// generate runs one full decompile of path into out.
func (s *session) generate(cmd *cobra.Command, path, out, templatesPath string, force bool) error {
	opts, err := s.options(templatesPath)
	if err != nil {
		return err
	}
	opts = selection(cmd, opts)

	p, err := s.load(path)
	if err != nil {
		return err
	}
	res, err := decompiler.Run(p, opts)
	if err != nil {
		return err
	}
	if err := decompiler.Write(res, out, decompiler.WriteOptions{Overwrite: force, Emitter: s.trace}); err != nil {
		return s.failed(err)
	}
	for _, f := range res.Files {
		s.printer.FileWritten(f.Path)
	}
	s.printer.Done(res.Count(decompiler.KindLayout), res.Count(decompiler.KindSource), out)
	return nil
}
