package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/nbt"
	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/tag"
)

type convertOptions struct {
	compression string
	level       int
	outOrder    string
}

func newConvertCommand(global *cliOptions) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Re-encode a document with another compression or byte order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.compression, "compression", "c", "", `Output compression ("none", "gzip", "zlib" or "zstd"); defaults to the input's`)
	flags.IntVarP(&opts.level, "level", "l", compress.DefaultLevel, "Compression level")
	flags.StringVar(&opts.outOrder, "output-order", "", `Output byte order ("big" or "little"); defaults to --order`)
	return cmd
}

func runConvert(cmd *cobra.Command, global *cliOptions, opts convertOptions, in, out string) error {
	tagOpts, err := global.tagOptions()
	if err != nil {
		return err
	}
	doc, err := nbt.ReadFile(in, nbt.WithTagOptions(tagOpts...))
	if err != nil {
		return err
	}

	format, err := global.outputFormat(cmd, opts.compression, doc.Compression)
	if err != nil {
		return err
	}
	doc.Compression = format

	writeOpts := tagOpts
	if opts.outOrder != "" {
		order, err := parseOrder(opts.outOrder)
		if err != nil {
			return err
		}
		writeOpts = append(writeOpts[:len(writeOpts):len(writeOpts)], tag.WithByteOrder(order))
	}

	err = doc.WriteFile(out,
		nbt.WithTagOptions(writeOpts...),
		nbt.WithCompressOptions(compress.WithLevel(global.outputLevel(cmd, opts.level))),
	)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", in, out, format)
	return err
}
