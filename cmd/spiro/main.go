// Command spiro renders, converts and hit-tests spiro drawings.
//
// Usage:
//
//	spiro render [--format svg|ps] [-o out] FILE
//	spiro convert -o OUT FILE
//	spiro hit [--threshold t] FILE X Y
//
// Drawings are read from .json, .yaml, .yml and .plate files. Solver and
// emitter settings can be given in a TOML file passed with --config.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"honnef.co/go/spiro"
)

type app struct {
	configPath string
	verbose    bool
	cfg        config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig()}
	root := &cobra.Command{
		Use:           "spiro",
		Short:         "Convert spiro drawings to Bézier curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), a.verbose)
			if a.configPath == "" {
				return nil
			}
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML `file` with solver and emitter settings")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log solver details")

	root.AddCommand(
		newRenderCmd(a),
		newConvertCmd(a),
		newHitCmd(a),
	)
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	spiro.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spiro:", err)
		os.Exit(1)
	}
}
