package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jfrag/syntax"
)

func newGrammarCmd() *cobra.Command {
	var verify bool
	var start string

	cmd := &cobra.Command{
		Use:   "grammar [file]",
		Short: "Print or verify the EBNF grammar",
		Long: `Print the built-in EBNF grammar. With --verify, parse the grammar
(or the given file), check that it is LL(1) and print the FIRST set
of every production.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			filename := "grammar.ebnf"
			source := syntax.GrammarSource()
			if len(args) == 1 {
				filename = args[0]
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				source = string(data)
			}

			if !verify {
				fmt.Fprint(out, source)
				return nil
			}

			grammar, err := syntax.LoadGrammar(filename, strings.NewReader(source), start)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			table, err := syntax.Compile(grammar, start)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			for _, name := range table.Productions() {
				nullable := ""
				if table.Nullable(name) {
					nullable = " (may be empty)"
				}
				fmt.Fprintf(out, "%-12s %s%s\n", name, strings.Join(table.First(name), " "), nullable)
			}
			fmt.Fprintf(out, "%s: ok\n", filename)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "verify the grammar and print FIRST sets")
	cmd.Flags().StringVar(&start, "start", syntax.StartProduction, "start production")

	return cmd
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	inner := err
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		inner = unwrapped
	}
	v := reflect.ValueOf(inner)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
