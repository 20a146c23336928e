package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jfrag/analysis"
	"github.com/dhamidi/jfrag/config"
	"github.com/dhamidi/jfrag/format"
	"github.com/dhamidi/jfrag/syntax"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string
	var color bool
	var grammarFile string
	var start string

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Tokenize the input and check it against the grammar",
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

			table := syntax.DefaultTable()
			if grammarFile != "" {
				if table, err = loadTable(grammarFile, start); err != nil {
					return err
				}
			}

			report := analysis.New(table).Analyze(input)
			encoder, err := format.New(outputFormat, cmd.OutOrStdout(), format.Options{Color: color})
			if err != nil {
				return err
			}
			if err := encoder.Encode(report); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if verdict := report.Verdict(); verdict != analysis.VerdictAccepted {
				return fmt.Errorf("input rejected: %s", verdict)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&color, "color", true, "colorize text output")
	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "check against this EBNF grammar instead of the built-in one")
	cmd.Flags().StringVar(&start, "start", syntax.StartProduction, "start production of --grammar")

	return cmd
}

func loadTable(filename, start string) (*syntax.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := syntax.LoadGrammar(filename, f, start)
	if err != nil {
		return nil, err
	}
	table, err := syntax.Compile(g, start)
	if err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}
	return table, nil
}
