package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shaharia-lab/regnotify/internal/config"
	"github.com/shaharia-lab/regnotify/internal/logger"
	"github.com/shaharia-lab/regnotify/internal/service"
	"github.com/shaharia-lab/regnotify/internal/storage"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// NewDeliveriesCmd returns the "deliveries" subcommand that prints the
// delivery log, newest first.
func NewDeliveriesCmd(cfg *config.AppConfig) *cobra.Command {
	var limit int
	var output string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "deliveries",
		Short: "Show recent notification deliveries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unsupported output format %q (use table, json or yaml)", output)
			}

			log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.SlogLevel())
			a := newApp(cfg, log)
			defer a.Close()

			store, err := a.openStore()
			if err != nil {
				return err
			}
			entries, err := service.NewDeliveryLogService(store).List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case outputJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case outputYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(entries); err != nil {
					return fmt.Errorf("encoding yaml: %w", err)
				}
				return enc.Close()
			default:
				return renderDeliveryTable(w, entries, newStyles(w, noColor))
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", storage.DefaultListLimit, "Maximum number of entries to show")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

// renderDeliveryTable aligns the rows first and styles whole lines afterwards
// so that escape sequences never affect column widths.
func renderDeliveryTable(w io.Writer, entries []storage.DeliveryLogEntry, st styles) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, st.Faint.Render("No deliveries recorded."))
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 6, 4, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tCHANNEL\tSTATUS\tMESSAGE")
	for _, e := range entries {
		msg := e.Message
		if e.ErrorMsg != "" {
			msg += " (" + e.ErrorMsg + ")"
		}
		msg = strings.NewReplacer("\n", `\n`, "\t", `\t`).Replace(msg)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Channel, e.Status, msg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			line = st.Header.Render(line)
		case entries[i-1].Status == storage.DeliveryStatusFailed:
			line = st.failed(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
