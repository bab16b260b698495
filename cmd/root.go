package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/regnotify/internal/build"
	"github.com/shaharia-lab/regnotify/internal/config"
)

// NewRootCmd builds the regnotify command tree around cfg.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:   "regnotify",
		Short: "Register users and notify them over a pluggable channel",
		Long: `regnotify registers users and sends each one a success notification
through the configured channel (email or sms).

The channel is chosen once per process with --channel or REGNOTIFY_CHANNEL.`,
		Version:       build.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewRegisterCmd(cfg),
		NewSendCmd(cfg),
		NewServeCmd(cfg),
		NewDeliveriesCmd(cfg),
		NewChannelsCmd(cfg),
		NewVersionCmd(),
	)
	return root
}

// Execute loads configuration and runs the root command.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
