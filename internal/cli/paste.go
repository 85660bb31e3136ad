package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tombowditch/pasters/client"
)

const rule = "======================================================================================"

func (a *app) newGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <value>",
		Short: "Get a paste by id or URL",
		Example: `  pasters get osx
  pasters get paste.rs/osx
  pasters get https://paste.rs/osx -o osx.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			ref, err := c.Resolve(args[0])
			if err != nil {
				return err
			}
			url := c.URL(ref)
			a.log.WithField("url", url).Debug("fetching paste")

			content, err := c.Fetch(cmd.Context(), ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(out, "Successfully wrote %s to %s\n", url, output)
				return nil
			}

			fmt.Fprintf(out, "====\t%s\t%s\n\n", url, rule[:54])
			fmt.Fprintln(out, content)
			fmt.Fprintf(out, "\n%s\n", rule)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the paste to this file instead of stdout")
	return cmd
}

func (a *app) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <file>",
		Short: "Make a new paste",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			rec, err := c.Create(cmd.Context(), data)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"id":      rec.ID,
				"outcome": rec.Outcome,
				"bytes":   len(data),
			}).Debug("paste created")

			out := cmd.OutOrStdout()
			switch rec.Outcome {
			case client.PartiallyCreated:
				a.log.WithField("file", args[0]).Warn("file too big, the server truncated it")
				fmt.Fprintf(out, "Partially created new paste at %s\n", rec.URL)
			default:
				fmt.Fprintf(out, "Successfully created new paste at %s\n", rec.URL)
			}
			return nil
		},
	}
}
