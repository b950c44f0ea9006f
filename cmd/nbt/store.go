package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/nbt"
	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/store"
	"github.com/wippyai/nbt/tag"
)

type storeOptions struct {
	compression string
	level       int
	output      string
}

func newStoreCommand(global *cliOptions) *cobra.Command {
	var opts storeOptions

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep documents in a key-value database",
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.compression, "compression", "c", "gzip", "Compression of stored documents")
	flags.IntVarP(&opts.level, "level", "l", compress.DefaultLevel, "Compression level")

	get := &cobra.Command{
		Use:   "get DB KEY",
		Short: "Print a stored document, or write it with --output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStoreGet(cmd, global, opts, args[0], args[1])
		},
	}
	get.Flags().StringVarP(&opts.output, "output", "o", "", "Write the document to this file instead of printing it")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "put DB KEY FILE",
			Short: "Store the document in FILE under KEY",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStorePut(cmd, global, opts, args[0], args[1], args[2])
			},
		},
		get,
		&cobra.Command{
			Use:     "ls DB",
			Short:   "List stored keys",
			Aliases: []string{"list"},
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStoreList(cmd, global, opts, args[0])
			},
		},
		&cobra.Command{
			Use:     "rm DB KEY...",
			Short:   "Remove stored documents",
			Aliases: []string{"remove"},
			Args:    cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStoreRemove(cmd, global, opts, args[0], args[1:])
			},
		},
	)
	return cmd
}

func openStore(cmd *cobra.Command, global *cliOptions, opts storeOptions, path string, readOnly bool) (*store.Store, []tag.Option, error) {
	tagOpts, err := global.tagOptions()
	if err != nil {
		return nil, nil, err
	}
	format, err := global.outputFormat(cmd, opts.compression, compress.Gzip)
	if err != nil {
		return nil, nil, err
	}

	storeOpts := []store.Option{
		store.WithCompression(format, compress.WithLevel(global.outputLevel(cmd, opts.level))),
		store.WithTagOptions(tagOpts...),
		store.WithLogger(global.log),
	}
	if readOnly {
		storeOpts = append(storeOpts, store.WithReadOnly())
	}
	s, err := store.Open(path, storeOpts...)
	return s, tagOpts, err
}

func runStorePut(cmd *cobra.Command, global *cliOptions, opts storeOptions, db, key, file string) error {
	s, tagOpts, err := openStore(cmd, global, opts, db, false)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := nbt.ReadFile(file, nbt.WithTagOptions(tagOpts...))
	if err != nil {
		return err
	}
	return s.Put(key, doc.Root)
}

func runStoreGet(cmd *cobra.Command, global *cliOptions, opts storeOptions, db, key string) error {
	s, tagOpts, err := openStore(cmd, global, opts, db, true)
	if err != nil {
		return err
	}
	defer s.Close()

	root, err := s.Get(key)
	if err != nil {
		return err
	}
	if opts.output == "" {
		return tag.Fprint(cmd.OutOrStdout(), root, tag.DumpOptions{})
	}

	format, err := global.outputFormat(cmd, opts.compression, compress.Gzip)
	if err != nil {
		return err
	}
	return nbt.New(root, format).WriteFile(opts.output,
		nbt.WithTagOptions(tagOpts...),
		nbt.WithCompressOptions(compress.WithLevel(global.outputLevel(cmd, opts.level))),
	)
}

func runStoreList(cmd *cobra.Command, global *cliOptions, opts storeOptions, db string) error {
	s, _, err := openStore(cmd, global, opts, db, true)
	if err != nil {
		return err
	}
	defer s.Close()

	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}

func runStoreRemove(cmd *cobra.Command, global *cliOptions, opts storeOptions, db string, keys []string) error {
	s, _, err := openStore(cmd, global, opts, db, false)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, k := range keys {
		if err := s.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
