package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/radiofrance/strargs/internal/logger"
	"github.com/radiofrance/strargs/pkg/strutil"
)

const (
	defaultLogLevel   = "info"
	defaultComparison = "ordinal"
	defaultOutput     = consoleFormat
)

// errNoMatch makes the process exit with status 1, without printing anything.
var errNoMatch = errors.New("no match")

func Execute() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}

	if !errors.Is(err, errNoMatch) {
		logger.Errorf("An error occurred: %v", err)
	}
	os.Exit(1)
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	var cfgFile string

	rootCmd := &cobra.Command{
		Use: "strargs",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Short: "Inspect command-line tokens and string lists",
		Long: `strargs parses --key/--key=value command-line tokens into a key/value mapping,
and looks up substrings in lists of strings.

Run strargs --help for more information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			preInitLogLevelFromFlags(cmd.Flags())

			if err := initConfig(v, cfgFile); err != nil {
				return err
			}

			bindPFlagsSnakeCase(v, cmd.Flags())
			logger.SetLevel(v.GetString("log_level"))

			return initCulture(v.GetString("culture"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.config/.strargs.yaml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", defaultLogLevel,
		`Log level. Can be any standard log-level ("info", "debug", etc...)`)
	rootCmd.PersistentFlags().String("comparison", defaultComparison,
		`Rules used to look up substrings: "ordinal", "ordinal-ignore-case", "current-culture",
"current-culture-ignore-case", "invariant-culture" or "invariant-culture-ignore-case".`)
	rootCmd.PersistentFlags().String("culture", "",
		`BCP 47 language tag used by the "current-culture" comparisons (e.g. "fr", "tr-TR").
Defaults to the root language.`)
	rootCmd.PersistentFlags().StringP("output", "o", defaultOutput,
		`Output format of the parse command (console|yaml|json|tokens)`)

	rootCmd.AddCommand(parseCommand(v))
	rootCmd.AddCommand(containsCommand(v))
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(docgenCommand())

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetConfigType("yaml")

	switch {
	case cfgFile != "":
		// Use config file from the flag.
		if err := setConfigFile(v, cfgFile); err != nil {
			return err
		}
	case os.Getenv("STRARGS_CONFIG") != "":
		// Use config file from the env variable.
		if err := setConfigFile(v, os.Getenv("STRARGS_CONFIG")); err != nil {
			return err
		}
	default:
		workingDir, err := os.Getwd()
		if err != nil {
			return err
		}

		// Add $HOME/.config and current directory as paths for Viper to search for the config file in.
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(path.Join(homeDir, ".config"))
		}
		v.AddConfigPath(workingDir)

		// Search config file with name ".strargs.yaml" or ".strargs.yml".
		v.SetConfigName(".strargs")
	}

	// Env vars starting with the STRARGS_ prefix can override any configuration.
	// e.g. STRARGS_LOG_LEVEL, STRARGS_COMPARISON, etc...
	v.SetEnvPrefix("strargs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		// Non-blocking, the config file is optional.
		logger.Debugf("%s", err)
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		logger.Infof("Using config file: %s", v.ConfigFileUsed())
	}

	return nil
}

// preInitLogLevelFromFlags sets the log level from the flag or env before the config is loaded,
// so that early logs respect user-provided preference.
// Precedence: flag > env (STRARGS_LOG_LEVEL) > config (handled later through Viper).
func preInitLogLevelFromFlags(flags *pflag.FlagSet) {
	flag := flags.Lookup("log-level")
	if flag != nil && flag.Changed {
		logger.SetLevel(flag.Value.String())
		return
	}

	if val, ok := os.LookupEnv("STRARGS_LOG_LEVEL"); ok {
		logger.SetLevel(val)
	}
}

func setConfigFile(v *viper.Viper, name string) error {
	if _, err := os.Stat(name); err != nil {
		return fmt.Errorf("config file %q not found", name)
	}

	v.SetConfigFile(name)

	return nil
}

func initCulture(culture string) error {
	if culture == "" {
		strutil.SetCurrentCulture(language.Und)
		return nil
	}

	tag, err := language.Parse(culture)
	if err != nil {
		return fmt.Errorf("invalid culture %q: %w", culture, err)
	}

	strutil.SetCurrentCulture(tag)
	logger.Debugf("Current culture set to %s", tag)

	return nil
}

// hydrateOptsFromViper copies all the viper values into our config struct.
// The mapping between viper identifiers and struct field names
// is ensured by `mapstructure` struct tags.
func hydrateOptsFromViper(v *viper.Viper, opts any) error {
	if err := v.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	return nil
}

// bindPFlagsSnakeCase binds the flags with viper values. The identifier of the viper value
// is the name of the flag with dashes replaced by underscores. This is required so we can
// retrieve values from viper with the same behaviour with config coming from files
// (my_config: "value") or from flags (--my-config=value).
func bindPFlagsSnakeCase(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		_ = v.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag)
	})
}
