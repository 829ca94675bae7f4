// Copyright © 2026 The Quill authors

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	// Registers the commonlog backend used by Configure.
	_ "github.com/tliron/commonlog/simple"
)

var (
	cfgFile string

	cmdLog = commonlog.GetLogger("quill.cmd")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill static analysis toolkit",
	Long: `Quill checks source files of the Quill scripting language without
running them. It recognizes declarations line by line, infers the types of
expressions and reports likely mistakes.

Getting started:
  quill lint file.quill          Run the checks on a file
  quill lint ./...               Check every .quill file below the directory
  quill symbols file.quill       List the declarations of a file
  quill infer '1 + 2.5'          Print the inferred type of an expression
  quill repl file.quill          Explore types interactively
  quill watch src                Re-check files as they change
  quill lsp                      Start the language server
  quill doc                      Print the language guide

Configuration is read from $HOME/.quill.yaml (or --config) and from
environment variables prefixed with QUILL_, e.g. QUILL_COLOR=never or
QUILL_LSP_DEBOUNCE=500ms. Flags take precedence over both.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		configureLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quill.yaml)")
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable).")
	flags.String("log-file", "", "Write logs to this file instead of stderr.")

	bindFlag("color", flags.Lookup("color"))
	bindFlag("log.verbosity", flags.Lookup("verbose"))
	bindFlag("log.file", flags.Lookup("log-file"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("color", "auto")
	v.SetDefault("lsp.debounce", 300*time.Millisecond)
	v.SetDefault("watch.debounce", 200*time.Millisecond)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".quill")
	}

	viper.SetEnvPrefix("QUILL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Only the absence of $HOME/.quill.yaml is tolerated.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "quill: reading config:", err)
			os.Exit(2)
		}
	}
}

func configureLogging() {
	var path *string
	if p := viper.GetString("log.file"); p != "" {
		path = &p
	}
	commonlog.Configure(viper.GetInt("log.verbosity"), path)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// durationSetting reads a duration from the configuration, falling back to
// def when the value does not parse.
func durationSetting(key string, def time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return def
	}
	d := viper.GetDuration(key)
	if d == 0 && viper.GetString(key) != "0" && viper.GetString(key) != "0s" {
		cmdLog.Warningf("invalid duration for %s: %q, using %s", key, viper.GetString(key), def)
		return def
	}
	return d
}
