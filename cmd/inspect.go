package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/asperge/internal/decompiler"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Summarize the screens of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.close()

		p, err := s.load(args[0])
		if err != nil {
			return err
		}
		screens, err := decompiler.Summarize(p)
		if err != nil {
			return s.failed(err)
		}

		s.printer.Info(fmt.Sprintf("%s (%s) version %s", p.Meta.AppName, p.Meta.PackageName, p.Meta.VersionName))
		s.printer.Table([]string{"LAYOUT", "ACTIVITY", "VIEWS", "BOUND", "HANDLERS"}, screenRows(screens))
		for _, sc := range screens {
			if len(sc.Opcodes) > 0 {
				s.printer.Detail("%s: %s", sc.Activity, strings.Join(sc.Opcodes, " "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func screenRows(screens []decompiler.ScreenSummary) [][]string {
	rows := make([][]string, 0, len(screens))
	for _, sc := range screens {
		activity := sc.Activity
		if activity == "" {
			activity = "-"
		}
		rows = append(rows, []string{
			sc.Layout,
			activity,
			strconv.Itoa(sc.Views),
			strconv.Itoa(sc.Referenced),
			strconv.Itoa(sc.Handlers),
		})
	}
	return rows
}
