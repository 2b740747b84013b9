package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/decompiler"
	"github.com/papapumpkin/asperge/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path> <out>",
	Short: "Regenerate <out> whenever the project changes",
	Long: "Watch generates once, then regenerates <out> each time the backup file or a " +
		"section file changes. <out> is replaced on every run; a failing run leaves the previous output in place. " +
		"An existing <out> must be empty or the output of an earlier run.",
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	addSelectionFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	tracePath, _ := cmd.Flags().GetString("trace")
	s, err := newSession(tracePath)
	if err != nil {
		return err
	}
	defer s.close()
	templatesPath, _ := cmd.Flags().GetString("templates")
	path, out := args[0], args[1]
	if err := decompiler.Replaceable(out); err != nil {
		return err
	}

	w, err := watch.NewWatcher(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s.printer.Banner()
	if err := s.generate(cmd, path, out, templatesPath, true); err != nil {
		s.printer.Error(err)
	}
	s.printer.Info(fmt.Sprintf("watching %s (ctrl+c to stop)", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			for _, f := range change.Files {
				s.printer.Detail("changed %s", filepath.Base(f))
			}
			if err := s.generate(cmd, path, out, templatesPath, true); err != nil {
				s.printer.Error(err)
			}
		}
	}
}
