// Command everdiff computes a semantic diff between two YAML document
// streams and prints the result, following spec.md §6's exit codes:
// 0 = no changes after filtering, 1 = changes present, 2 = fatal error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/everdiff/everdiff"
	"github.com/everdiff/everdiff/internal/config"
	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/watch"
)

var (
	configFlag      string
	kubernetesFlag  bool
	ignoreMovedFlag bool
	watchFlag       bool
	logFileFlag     string
	verboseFlag     bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "everdiff <left.yaml> <right.yaml>",
		Short: "Semantic YAML diff",
		Long: `everdiff compares two YAML document streams structurally instead of
textually: reordered mapping keys, re-tagged scalars and moved sequence
elements are reported for what they are, not as line noise.`,
		Args:          cobra.ExactArgs(2),
		RunE:          runEverdiff,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	configureFlags(cmd)
	return cmd
}

func configureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFlag, configFlagName, "c", viper.GetString(configFlagName), "path to everdiff.yaml")
	cmd.Flags().BoolVar(&kubernetesFlag, kubernetesFlagName, viper.GetBool(kubernetesFlagName), "pair documents by apiVersion/kind/metadata.name instead of position")
	cmd.Flags().BoolVar(&ignoreMovedFlag, ignoreMovedFlagName, viper.GetBool(ignoreMovedFlagName), "suppress Moved changes")
	cmd.Flags().BoolVarP(&watchFlag, watchFlagName, "w", viper.GetBool(watchFlagName), "re-run on every change to either file")
	cmd.Flags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFileFlagName), "log file path")
	cmd.Flags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(verboseFlagName), "debug-level logging")
}

func runEverdiff(_ *cobra.Command, args []string) error {
	configureLogger(logFileFlag, verboseFlag)
	leftPath, rightPath := args[0], args[1]

	cfg, err := loadCoreConfig()
	if err != nil {
		return exitError{code: 2, err: err}
	}

	if watchFlag {
		return runWatch(leftPath, rightPath, cfg)
	}
	return runOnce(leftPath, rightPath, cfg)
}

func loadCoreConfig() (everdiff.Config, error) {
	cfg := everdiff.Config{}

	if configFlag != "" {
		data, err := os.ReadFile(configFlag)
		switch {
		case err == nil:
			loaded, err := config.Load(data)
			if err != nil {
				return everdiff.Config{}, err
			}
			cfg = everdiff.Config{
				Identity:       loaded.Identity,
				IgnoreMoved:    loaded.IgnoreMoved,
				IgnorePatterns: loaded.IgnorePatterns,
				Rules:          loaded.Rules,
			}
		case errors.Is(err, os.ErrNotExist):
			// no config file; flags alone decide behaviour.
		default:
			return everdiff.Config{}, err
		}
	}

	if kubernetesFlag {
		cfg.Identity = document.ModeKubernetes
	}
	if ignoreMovedFlag {
		cfg.IgnoreMoved = true
	}
	return cfg, nil
}

func runOnce(leftPath, rightPath string, cfg everdiff.Config) error {
	leftBytes, err := os.ReadFile(leftPath)
	if err != nil {
		return exitError{code: 2, err: err}
	}
	rightBytes, err := os.ReadFile(rightPath)
	if err != nil {
		return exitError{code: 2, err: err}
	}

	report, err := everdiff.Run(leftBytes, rightBytes, cfg)
	if err != nil {
		globalLogger.Error("run failed", "error", err)
		return exitError{code: 2, err: err}
	}

	printReport(os.Stdout, report)
	if report.HasChanges() {
		return exitError{code: 1}
	}
	return nil
}

func runWatch(leftPath, rightPath string, cfg everdiff.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return watch.Run(ctx, leftPath, rightPath, cfg, func(res watch.Result) {
		if res.Err != nil {
			globalLogger.Error("run failed", "error", res.Err)
			fmt.Fprintln(os.Stderr, "everdiff:", res.Err)
			return
		}
		printReport(os.Stdout, res.Report)
	})
}

// exitError carries the process exit code a RunE error should produce;
// cobra only sees an error, so main translates this after Execute.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			if ee.err != nil {
				fmt.Fprintln(os.Stderr, "everdiff:", ee.err)
			}
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "everdiff:", err)
		os.Exit(2)
	}
}
