package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/nbt/tag"
)

// cliOptions holds the global flags after they have been merged with the
// config file.
type cliOptions struct {
	configFile string
	order      string
	text       string
	maxDepth   int
	strictEnd  bool
	verbose    bool

	file fileConfig
	log  *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "nbt",
		Short:         "Inspect, convert and store NBT documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.log.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a TOML config file")
	flags.StringVar(&opts.order, "order", "big", `Byte order of the tag payload ("big" or "little")`)
	flags.StringVar(&opts.text, "text", "modified", `Text encoding of names and strings ("modified" or "utf8")`)
	flags.IntVar(&opts.maxDepth, "max-depth", tag.DefaultMaxDepth, "Maximum container nesting")
	flags.BoolVar(&opts.strictEnd, "strict-end", false, "Refuse to write compounds without an End marker")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newDumpCommand(opts),
		newGetCommand(opts),
		newConvertCommand(opts),
		newBrowseCommand(opts),
		newStoreCommand(opts),
	)
	return cmd
}

// load merges the config file into the flags that were not given on the
// command line and sets up logging.
func (o *cliOptions) load(cmd *cobra.Command) error {
	if o.configFile != "" {
		fc, err := loadConfig(o.configFile)
		if err != nil {
			return err
		}
		o.file = fc
		o.apply(cmd, fc)
	}

	if o.verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		o.log = log
		tag.SetLogger(log)
	}
	return nil
}
