package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jfrag/analysis"
	"github.com/dhamidi/jfrag/config"
	"github.com/dhamidi/jfrag/format"
)

func newTokensCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string
	var color bool

	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Tokenize the input and count tokens per label",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Output.Format
			}
			if !cmd.Flags().Changed("color") {
				color = *cfg.Output.Color
			}

			report := analysis.Tokenize(input)
			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), format.Options{TokensOnly: true, Color: color})
			if err != nil {
				return err
			}
			if err := encoder.Encode(report); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if n := len(report.LexicalErrors); n > 0 {
				return fmt.Errorf("%d lexical error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&color, "color", true, "colorize text output")

	return cmd
}
