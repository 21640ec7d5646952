package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newRemedyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "remedy <label>",
		Short: "Print the curated remedy for a classifier label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.services.RemedyResolver.Resolve(strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Remedy)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full resolution as JSON")
	return cmd
}

func newDescribeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe <name>",
		Short: "Print a short encyclopedia summary for a plant or disease",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			desc := a.services.Descriptions.Describe(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), desc)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), desc.Text)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full description as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
