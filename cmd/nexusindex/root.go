// Command nexusindex is the CLI front end for nexuscore: index volumes or
// directories, search the persisted index, and inspect statistics.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nexusfs/nexuscore/index"
	"github.com/nexusfs/nexuscore/internal/logging"
)

var (
	cfgFile   string
	indexPath string
	jsonLogs  bool
	log       *slog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nexusindex",
		Short:         "Fast local file indexing and search",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./nexusindex.yaml)")
	root.PersistentFlags().String("index-path", "nexuscore.index", "path to the persistent search index directory")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured logs as JSON")
	root.PersistentFlags().StringSlice("drives", index.DefaultConfig().Drives, "drives to index")
	root.PersistentFlags().Bool("include-hidden", index.DefaultConfig().IncludeHidden, "include hidden files")
	root.PersistentFlags().Bool("include-system", index.DefaultConfig().IncludeSystem, "include system files")
	root.PersistentFlags().Bool("use-mft", index.DefaultConfig().UseMFT, "use MFT enumeration where supported")
	root.PersistentFlags().Int("threads", index.DefaultConfig().Threads, "parallel enumeration workers")
	root.PersistentFlags().StringSlice("exclude-dirs", index.DefaultConfig().ExcludeDirs, "path substrings to exclude")

	if err := viper.BindPFlags(root.PersistentFlags()); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}

	root.AddCommand(newIndexCmd(), newSearchCmd(), newStatsCmd(), newDupesCmd())
	return root
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nexusindex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	format := logging.FormatText
	if jsonLogs || viper.GetBool("json-logs") {
		format = logging.FormatJSON
	}
	log = logging.New(format, os.Stderr)
	indexPath = viper.GetString("index-path")
	return nil
}

func configFromFlags() index.Config {
	cfg := index.DefaultConfig()
	if v := viper.GetStringSlice("drives"); len(v) > 0 {
		cfg.Drives = v
	}
	cfg.IncludeHidden = viper.GetBool("include-hidden")
	cfg.IncludeSystem = viper.GetBool("include-system")
	cfg.UseMFT = viper.GetBool("use-mft")
	if t := viper.GetInt("threads"); t > 0 {
		cfg.Threads = t
	}
	if v := viper.GetStringSlice("exclude-dirs"); len(v) > 0 {
		cfg.ExcludeDirs = v
	}
	return cfg
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
