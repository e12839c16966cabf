package main

import (
	"errors"
	"fmt"
	"os"

	"netgro/internal/bootstrap"
	"netgro/internal/config"
	"netgro/internal/models"
	"netgro/internal/observability"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	rt       *bootstrap.Runtime
	noColor  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "netgro [command]",
	Short:         "NetGRO: a small professional network in your terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		switch {
		case logLevel != "":
			cfg.LogLevel = logLevel
		case os.Getenv("LOG_LEVEL") == "":
			// Keep the terminal for pages; info logs go to stderr only on request.
			cfg.LogLevel = "warn"
		}
		// One correlation ID per invocation ties its log records together.
		cmd.SetContext(observability.EnsureCorrelationID(cmd.Context()))
		rt, err = bootstrap.InitRuntime(cmd.Context(), cfg, bootstrap.Options{})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// requireUser returns the signed-in user id or ErrUnauthenticated.
func requireUser(cmd *cobra.Command) (string, error) {
	id, ok := rt.Auth.CurrentUserID(cmd.Context())
	if !ok {
		return "", models.ErrUnauthenticated
	}
	return id, nil
}

// exitWithError prints the user-facing message of err and exits with status 1.
func exitWithError(err error) {
	msg := err.Error()
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code != models.CodeStorageWriteFailure {
		msg = appErr.Message
	}
	fmt.Fprintln(os.Stderr, color.New(color.FgHiRed, color.Bold).Sprint("🚨 "+msg))
	if rt != nil {
		_ = rt.Close(rootCmd.Context())
	}
	os.Exit(1)
}

func success(format string, a ...any) {
	fmt.Println(color.New(color.FgHiGreen).Sprintf("✅ "+format, a...))
}
