package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/wippyai/nbt"
	"github.com/wippyai/nbt/tag"
)

var partStyles = map[tag.Part]lipgloss.Style{
	tag.PartType:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	tag.PartName:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")),
	tag.PartValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	tag.PartCount: lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
}

type dumpOptions struct {
	fullArrays bool
	color      string
	jobs       int
}

func newDumpCommand(global *cliOptions) *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump FILE...",
		Short: "Print the tag tree of one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, global, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.fullArrays, "full-arrays", false, "Print every array element")
	flags.StringVar(&opts.color, "color", "auto", `Colour output ("auto", "always" or "never")`)
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of files decoded in parallel")
	return cmd
}

func runDump(cmd *cobra.Command, global *cliOptions, opts dumpOptions, paths []string) error {
	tagOpts, err := global.tagOptions()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("full-arrays") && global.file.Output.FullArrays != nil {
		opts.fullArrays = *global.file.Output.FullArrays
	}
	if !cmd.Flags().Changed("color") && global.file.Output.Color != "" {
		opts.color = global.file.Output.Color
	}

	out := cmd.OutOrStdout()
	dumpOpts := tag.DumpOptions{FullArrays: opts.fullArrays}
	if useColor(opts.color, out) {
		dumpOpts.Style = func(p tag.Part, s string) string {
			return partStyles[p].Render(s)
		}
	}

	// Files are decoded concurrently but printed in argument order.
	rendered := make([][]byte, len(paths))
	var g errgroup.Group
	g.SetLimit(max(opts.jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			doc, err := nbt.ReadFile(path, nbt.WithTagOptions(tagOpts...))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			var buf bytes.Buffer
			if len(paths) > 1 {
				fmt.Fprintf(&buf, "==> %s (%s) <==\n", path, doc.Compression)
			}
			if err := tag.Fprint(&buf, doc.Root, dumpOpts); err != nil {
				return err
			}
			rendered[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, b := range rendered {
		if _, err := out.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
