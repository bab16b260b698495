package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/logger"
)

// NewSendCmd returns the "send" subcommand that delivers a single message
// without a registration.
func NewSendCmd(cfg *config.AppConfig) *cobra.Command {
	var channel string
	var record bool

	cmd := &cobra.Command{
		Use:   "send [flags] <message>",
		Short: "Send a message through a notification channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
			a := newApp(cfg, log)
			defer a.Close()

			notifier, err := a.notifier(channel, cmd.OutOrStdout(), record)
			if err != nil {
				return err
			}
			notifier.Send(args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", cfg.Channel, "Notification channel (email, sms)")
	cmd.Flags().BoolVar(&record, "record", cfg.RecordDeliveries, "Record the delivery in the delivery log")
	return cmd
}
