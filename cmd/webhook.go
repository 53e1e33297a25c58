package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/marcus/bookmodal/internal/config"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/submit"
	"github.com/marcus/bookmodal/internal/webhook"
	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:     "webhook",
	Short:   "Manage the booking webhook",
	GroupID: "system",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Point confirmed bookings at a webhook URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		secretChanged := cmd.Flags().Changed("secret")
		secret, _ := cmd.Flags().GetString("secret")

		var signed bool
		err := config.Update(getBaseDir(), func(cfg *models.Config) error {
			if cfg.Webhook == nil {
				cfg.Webhook = &models.WebhookConfig{}
			}
			cfg.Webhook.URL = url
			if secretChanged {
				cfg.Webhook.Secret = secret
			}
			signed = cfg.Webhook.Secret != ""
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Webhook URL set: %s\n", url)
		if signed {
			fmt.Fprintln(out, "HMAC secret: configured")
		}
		return nil
	},
}

var webhookRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm"},
	Short:   "Stop sending bookings to the webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := config.Update(getBaseDir(), func(cfg *models.Config) error {
			cfg.Webhook = nil
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Webhook configuration removed.")
		return nil
	},
}

var webhookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective webhook settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		printWebhookStatus(cmd.OutOrStdout(), getBaseDir())
		return nil
	},
}

// printWebhookStatus shows the resolved settings, env overrides included.
func printWebhookStatus(out io.Writer, baseDir string) {
	source := webhook.Source(baseDir)
	if source == "" {
		fmt.Fprintln(out, "Webhook: not configured")
		return
	}

	secret := "not set"
	if webhook.GetSecret(baseDir) != "" {
		secret = "configured"
	}
	fmt.Fprintf(out, "Webhook URL: %s\n", webhook.GetURL(baseDir))
	fmt.Fprintf(out, "HMAC secret: %s\n", secret)
	fmt.Fprintf(out, "Source: %s\n", source)
}

var webhookTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Deliver a sample booking to the webhook and wait for the reply",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := webhook.FromConfig(getBaseDir())
		if client == nil {
			return fmt.Errorf("no webhook URL configured (use: bookmodal webhook set <url>)")
		}

		sample := submit.New(sampleSnapshot(), time.Now())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sending booking %s to %s ... ", sample.ID, client.URL)
		if err := client.Send(cmd.Context(), sample); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("deliver test booking: %w", err)
		}
		fmt.Fprintln(out, "OK")
		return nil
	},
}

func sampleSnapshot() models.ConfirmationSnapshot {
	cat := models.DefaultCatalog()
	t, slot := cat.Treatments[0], cat.TimeSlots[0]
	return models.NewSnapshot(models.BookingDraft{
		Name:           "Webhook Test",
		Email:          "test@example.com",
		TreatmentID:    t.ID,
		TreatmentLabel: t.Label,
		TimeSlotID:     slot.ID,
		TimeSlotLabel:  slot.Label,
		Notes:          "sent by bookmodal webhook test",
	})
}

func init() {
	webhookSetCmd.Flags().String("secret", "", "HMAC-SHA256 signing secret")
	webhookCmd.AddCommand(webhookSetCmd, webhookRemoveCmd, webhookStatusCmd, webhookTestCmd)
	rootCmd.AddCommand(webhookCmd)
}
