package main

import (
	"encoding/binary"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"

	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/mutf8"
	"github.com/wippyai/nbt/tag"
)

// fileConfig is the layout of the --config file:
//
//	order = "little"
//	text = "utf8"
//	max_depth = 64
//	strict_end = true
//
//	[output]
//	compression = "zstd"
//	level = 3
//	full_arrays = true
//	color = "never"
type fileConfig struct {
	Order     string `toml:"order"`
	Text      string `toml:"text"`
	MaxDepth  int    `toml:"max_depth"`
	StrictEnd *bool  `toml:"strict_end"`

	Output outputConfig `toml:"output"`
}

type outputConfig struct {
	Compression string `toml:"compression"`
	Level       *int   `toml:"level"`
	FullArrays  *bool  `toml:"full_arrays"`
	Color       string `toml:"color"`
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+path)
	}
	return fc, nil
}

// apply copies config values into the global flags the user did not set.
func (o *cliOptions) apply(cmd *cobra.Command, fc fileConfig) {
	flags := cmd.Flags()
	if fc.Order != "" && !flags.Changed("order") {
		o.order = fc.Order
	}
	if fc.Text != "" && !flags.Changed("text") {
		o.text = fc.Text
	}
	if fc.MaxDepth != 0 && !flags.Changed("max-depth") {
		o.maxDepth = fc.MaxDepth
	}
	if fc.StrictEnd != nil && !flags.Changed("strict-end") {
		o.strictEnd = *fc.StrictEnd
	}
}

// tagOptions validates the global flags and turns them into codec options.
func (o *cliOptions) tagOptions() ([]tag.Option, error) {
	order, err := parseOrder(o.order)
	if err != nil {
		return nil, err
	}
	mode, ok := mutf8.ParseMode(o.text)
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseConfig, "unknown text mode "+o.text)
	}
	if o.maxDepth < 1 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "max depth must be at least 1")
	}
	return []tag.Option{
		tag.WithByteOrder(order),
		tag.WithTextMode(mode),
		tag.WithMaxDepth(o.maxDepth),
		tag.WithStrictEnd(o.strictEnd),
		tag.WithLogger(o.log),
	}, nil
}

// outputFormat resolves the compression for written documents: the flag
// when set, then the config file, then fallback.
func (o *cliOptions) outputFormat(cmd *cobra.Command, flag string, fallback compress.Format) (compress.Format, error) {
	name := ""
	switch {
	case cmd.Flags().Changed("compression"):
		name = flag
	case o.file.Output.Compression != "":
		name = o.file.Output.Compression
	default:
		return fallback, nil
	}
	return compress.ParseFormat(name)
}

// outputLevel resolves the compression level the same way as outputFormat.
func (o *cliOptions) outputLevel(cmd *cobra.Command, flag int) int {
	if !cmd.Flags().Changed("level") && o.file.Output.Level != nil {
		return *o.file.Output.Level
	}
	return flag
}

func parseOrder(s string) (binary.ByteOrder, error) {
	switch s {
	case "big", "be":
		return binary.BigEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	}
	return nil, errors.InvalidInput(errors.PhaseConfig, "unknown byte order "+s)
}
