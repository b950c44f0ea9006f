package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/nbt"
	"github.com/wippyai/nbt/tag"
)

func newGetCommand(global *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at a slash-separated path such as level/players/0/name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, global, args[0], args[1])
		},
	}
}

func runGet(cmd *cobra.Command, global *cliOptions, file, path string) error {
	tagOpts, err := global.tagOptions()
	if err != nil {
		return err
	}
	doc, err := nbt.ReadFile(file, nbt.WithTagOptions(tagOpts...))
	if err != nil {
		return err
	}

	t, err := tag.At(doc.Root).Path(splitPath(path)...).Tag()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(t))
	return err
}

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// formatValue prints scalars and strings bare and falls back to a dump for
// everything else.
func formatValue(t tag.Tag) string {
	switch v := t.(type) {
	case *tag.Byte:
		return strconv.FormatInt(int64(v.Value), 10)
	case *tag.UByte:
		return strconv.FormatUint(uint64(v.Value), 10)
	case *tag.Short:
		return strconv.FormatInt(int64(v.Value), 10)
	case *tag.UShort:
		return strconv.FormatUint(uint64(v.Value), 10)
	case *tag.Int:
		return strconv.FormatInt(int64(v.Value), 10)
	case *tag.UInt:
		return strconv.FormatUint(uint64(v.Value), 10)
	case *tag.Long:
		return strconv.FormatInt(v.Value, 10)
	case *tag.ULong:
		return strconv.FormatUint(v.Value, 10)
	case *tag.Float:
		return strconv.FormatFloat(float64(v.Value), 'g', -1, 32)
	case *tag.Double:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *tag.String:
		return v.Value
	}
	return strings.TrimSuffix(tag.Dump(t), "\n")
}
