package app

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/whyideas/whyideas/internal/contact"
	"github.com/whyideas/whyideas/internal/contact/form"
	"github.com/whyideas/whyideas/internal/relay"
)

func init() { //nolint: gochecknoinits
	submitCmd.Flags().StringVar(&submitName, "name", "", "Sender name")
	submitCmd.Flags().StringVar(&submitEmail, "email", "", "Sender email address")
	submitCmd.Flags().StringVar(&submitMessage, "message", "", "Message body")

	rootCmd.AddCommand(submitCmd)
}

var (
	submitName    string
	submitEmail   string
	submitMessage string

	submitCmd = &cobra.Command{
		Use:   "submit",
		Short: "Send a contact message through the email relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := relay.New(cfg.Relay.ClientConfig())
			if err != nil {
				return err
			}

			state, err := form.New(client).Submit(cmd.Context(), map[string]any{
				contact.FieldName:    submitName,
				contact.FieldEmail:   submitEmail,
				contact.FieldMessage: submitMessage,
			})

			out := cmd.OutOrStdout()

			var verr *contact.ValidationError
			if errors.As(err, &verr) {
				fields := make([]string, 0, len(state.FieldErrors))
				for f := range state.FieldErrors {
					fields = append(fields, f)
				}
				sort.Strings(fields)

				for _, f := range fields {
					_, _ = fmt.Fprintf(out, "%s: %s\n", f, state.FieldErrors[f])
				}

				return err
			}

			_, _ = fmt.Fprintln(out, state.Message)

			return err
		},
	}
)
