package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/logger"
	"github.com/shaharia-lab/regnotify/internal/notification"
	"github.com/shaharia-lab/regnotify/internal/service"
)

// NewRegisterCmd returns the "register" subcommand.
func NewRegisterCmd(cfg *config.AppConfig) *cobra.Command {
	var channel string
	var record bool

	cmd := &cobra.Command{
		Use:   "register [flags] <username>...",
		Short: "Register one or more users and notify each of them",
		Long: `Register each username in order. For every user the command prints
"<username> registered." followed by the channel's notification line.

Examples:
  regnotify register Alice
  regnotify register --channel sms Bob Carol`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
			a := newApp(cfg, log)
			defer a.Close()

			out := notification.NewSyncWriter(cmd.OutOrStdout())
			notifier, err := a.notifier(channel, out, record)
			if err != nil {
				return err
			}

			svc, err := service.NewRegistrationService(notifier, out, a.startBus(), log)
			if err != nil {
				return err
			}
			for _, username := range args {
				svc.Register(username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", cfg.Channel, "Notification channel (email, sms)")
	cmd.Flags().BoolVar(&record, "record", cfg.RecordDeliveries, "Record deliveries in the delivery log")
	return cmd
}
