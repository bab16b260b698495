package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/notification"
)

// NewChannelsCmd returns the "channels" subcommand listing available channels.
// The configured default is marked with "*".
func NewChannelsCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List the available notification channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := strings.ToLower(strings.TrimSpace(cfg.Channel))
			for _, name := range notification.NewRegistry().Channels() {
				marker := " "
				if name == current {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
