package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/radiofrance/strargs/internal/logger"
	"github.com/radiofrance/strargs/pkg/argparse"
)

type parseOpts struct {
	// Root options
	Output string `mapstructure:"output"`

	// Parse specific options
	Get string `mapstructure:"get"`
}

func parseCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse -- [TOKENS...]",
		Short: "Parse --key and --key=value tokens into a key/value mapping",
		Long: `strargs parse reads the tokens given after "--" and prints the options they define.

Options are written "--key=value" or "--key value". An option directly followed by another
option, or by nothing, has an empty value. Keys are case-insensitive: when a key is repeated,
its last value wins. Tokens that are not options are ignored.`,
		Example: `  strargs parse -- --registry-url eu.gcr.io --dry-run --log-level=debug
  strargs parse -o yaml -- build --tag=latest
  strargs parse --get tag -- --TAG latest`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := parseOpts{}
			if err := hydrateOptsFromViper(v, &opts); err != nil {
				return err
			}

			return doParse(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().String("get", "",
		"Only print the value of this key. The leading dashes are optional. Exits with status 1 if the key is missing.")

	return cmd
}

func doParse(w io.Writer, tokens []string, opts parseOpts) error {
	format, err := parseOutputFormat(opts.Output)
	if err != nil {
		return err
	}

	if tokens == nil {
		tokens = []string{}
	}

	args, err := argparse.ParseArguments(tokens)
	if err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}

	logger.Debugf("Parsed %d option(s) from %d token(s)", args.Len(), len(tokens))

	if opts.Get != "" {
		key := opts.Get
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}

		value, ok := args.Get(key)
		if !ok {
			logger.Debugf("Key %s not found", key)
			return errNoMatch
		}

		_, err = fmt.Fprintln(w, value)
		return err
	}

	return renderArguments(w, args, format)
}
