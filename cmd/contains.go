package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/radiofrance/strargs/internal/logger"
	"github.com/radiofrance/strargs/pkg/strutil"
)

type containsOpts struct {
	// Root options
	Comparison string `mapstructure:"comparison"`

	// Contains specific options
	File     []string `mapstructure:"file"`
	ExitCode bool     `mapstructure:"exit_code"`
}

func containsCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contains PART [ITEMS...]",
		Short: "Check whether any item contains PART",
		Long: `strargs contains prints "true" if at least one of the items contains PART, "false" otherwise.

Items are taken from the arguments following PART, and from every line of the files given
with --file. The comparison rules are selected with --comparison.`,
		Example: `  strargs contains dock docker kaniko buildkit
  strargs contains --comparison ordinal-ignore-case --exit-code KANIKO -f images.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := containsOpts{}
			if err := hydrateOptsFromViper(v, &opts); err != nil {
				return err
			}

			return doContains(cmd.OutOrStdout(), args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringSliceP("file", "f", nil,
		"Read items from this file, one per line. Can be repeated.")
	cmd.Flags().Bool("exit-code", false,
		"Exit with status 1 when no item contains PART.")

	return cmd
}

func doContains(w io.Writer, part string, items []string, opts containsOpts) error {
	comparison, err := strutil.ParseComparison(opts.Comparison)
	if err != nil {
		return err
	}

	fileItems, err := readLines(opts.File)
	if err != nil {
		return err
	}

	items = strutil.DedupeStrSlice(append(items, fileItems...))
	logger.Debugf("Looking up %q in %d item(s) using %s comparison", part, len(items), comparison)

	found := strutil.ContainsAPart(items, part, comparison)
	if _, err := fmt.Fprintln(w, found); err != nil {
		return err
	}

	if !found && opts.ExitCode {
		return errNoMatch
	}

	return nil
}

// readLines reads all the files concurrently, and returns their lines in the order of the files.
func readLines(files []string) ([]string, error) {
	lines := make([][]string, len(files))

	errG := new(errgroup.Group)
	for i, file := range files {
		i, file := i, file
		errG.Go(func() error {
			fileLines, err := readFileLines(file)
			if err != nil {
				return err
			}
			lines[i] = fileLines
			return nil
		})
	}

	if err := errG.Wait(); err != nil {
		return nil, err
	}

	var res []string
	for _, fileLines := range lines {
		res = append(res, fileLines...)
	}

	return res, nil
}

func readFileLines(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items file %s: %w", file, err)
	}

	if len(lines) == 0 {
		logger.Warnf("Items file %s is empty", file)
	} else {
		logger.Debugf("Read %d item(s) from %s", len(lines), file)
	}

	return lines, nil
}
