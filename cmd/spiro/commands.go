package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"honnef.co/go/spiro"
	"honnef.co/go/spiro/drawing"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a drawing as SVG or PostScript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := drawing.LoadFile(args[0])
			if err != nil {
				return err
			}
			var write func(io.Writer, *spiro.Options) error
			switch format {
			case "svg":
				write = d.WriteSVG
			case "ps":
				write = d.WritePS
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			return withOutput(cmd, output, func(w io.Writer) error {
				return write(w, a.cfg.options())
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "svg", "output format (svg or ps)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output `file` (default stdout)")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert -o OUT FILE",
		Short: "Convert a drawing between JSON, YAML and plate files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := drawing.LoadFile(args[0])
			if err != nil {
				return err
			}
			return drawing.SaveFile(d, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output `file`; its extension selects the format")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newHitCmd(a *app) *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "hit FILE X Y",
		Short: "Report the control point or shape at a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x coordinate: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y coordinate: %w", err)
			}
			d, err := drawing.LoadFile(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.HitThreshold
			}
			pt := spiro.Pt(x, y)
			out := cmd.OutOrStdout()
			if shape, point, ok := d.HitTestPoint(pt, threshold); ok {
				fmt.Fprintf(out, "point shape=%d index=%d\n", shape, point)
				return nil
			}
			if shape, knot, ok := d.HitTestShape(pt, threshold, a.cfg.options()); ok {
				fmt.Fprintf(out, "shape shape=%d knot=%d\n", shape, knot)
				return nil
			}
			fmt.Fprintln(out, "none")
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", defaultHitThreshold, "hit distance in drawing units")
	return cmd
}

// withOutput runs fn with the file at path, or with the command's standard
// output if path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
