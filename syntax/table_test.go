package syntax

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"
)

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	return g
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	if table.Start() != StartProduction {
		t.Errorf("Start() = %q, want %q", table.Start(), StartProduction)
	}

	want := []string{"Program", "Statement", "Statements"}
	if got := table.Productions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Productions() = %v, want %v", got, want)
	}

	if DefaultTable() != table {
		t.Error("DefaultTable() built a second table")
	}
}

func TestDefaultTableFirstSets(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name     string
		first    []string
		nullable bool
	}{
		{"Program", []string{`"public"`}, false},
		{"Statement", []string{`"for"`, `"n"`, `"{"`}, false},
		{"Statements", []string{`"for"`, `"n"`, `"{"`}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.First(tt.name); !reflect.DeepEqual(got, tt.first) {
				t.Errorf("First() = %v, want %v", got, tt.first)
			}
			if got := table.Nullable(tt.name); got != tt.nullable {
				t.Errorf("Nullable() = %v, want %v", got, tt.nullable)
			}
		})
	}

	if table.First("Missing") != nil {
		t.Error("First() of unknown production is not nil")
	}
}

func TestLoadGrammarBuiltin(t *testing.T) {
	g, err := LoadGrammar("grammar.ebnf", strings.NewReader(GrammarSource()), StartProduction)
	if err != nil {
		t.Fatalf("LoadGrammar: %v", err)
	}
	for _, name := range []string{"Program", "Statements", "Statement", "identifier", "terminator"} {
		if g[name] == nil {
			t.Errorf("production %q missing", name)
		}
	}
}

func TestLoadGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `Program = "a" `},
		{"undefined", `Program = Missing .`},
		{"unused", `Program = "a" . Other = "b" .`},
		{"no start", `Other = "a" .`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGrammar("test", strings.NewReader(tt.src), "Program"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCompileConflicts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"overlapping alternatives",
			`Program = "a" "b" | "a" "c" .`,
			`alternatives both start with "a"`,
		},
		{
			"left recursion",
			`Program = Program "x" | "y" .`,
			`alternatives both start with "y"`,
		},
		{
			"unproductive",
			`Program = Program "x" .`,
			"derives no terminal string",
		},
		{
			"nullable repetition",
			`Program = { [ "a" ] } .`,
			"may be empty",
		},
		{
			"two empty alternatives",
			`Program = [ "a" ] | [ "b" ] .`,
			"more than one alternative is empty",
		},
		{
			"unknown class",
			`Program = number .`,
			`unknown token class "number"`,
		},
		{
			"literal matched by pattern",
			"Program = \"if\" | word .\nword = letter { letter } .\nletter = \"a\" … \"z\" .",
			`alternatives both start with "if"`,
		},
		{
			"undefined production",
			`Program = Other .`,
			`production "Other" not defined`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(mustGrammar(t, tt.src), "Program")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestCompileAcceptsLL1(t *testing.T) {
	g := mustGrammar(t, `
		Program = "x" [ Tail ] Opt Empty { "," identifier } ( "." | ";" ) .
		Tail    = "y" | "z" .
		Opt     = [ "w" ] .
		Empty   = .
	`)
	table, err := Compile(g, "Program")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if table.Nullable("Tail") {
		t.Error("Tail should not be nullable")
	}
	if !table.Nullable("Opt") || !table.Nullable("Empty") {
		t.Error("Opt and Empty should be nullable")
	}
	if got, want := table.First("Opt"), []string{`"w"`}; !reflect.DeepEqual(got, want) {
		t.Errorf("First(Opt) = %v, want %v", got, want)
	}
}

func TestRecognizerCustomGrammar(t *testing.T) {
	g := mustGrammar(t, `List = "(" { identifier } ")" .`)
	table, err := Compile(g, "List")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	r := NewRecognizer(table)
	if _, errs := r.Parse("( a b c )"); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	_, errs := r.Parse("( a 1 )")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if got := errs[0].Error(); got != "unexpected token '1' at line 1" {
		t.Errorf("Error() = %q", got)
	}
	if want := []string{`")"`}; !reflect.DeepEqual(errs[0].Expected, want) {
		t.Errorf("Expected = %v, want %v", errs[0].Expected, want)
	}
}

func TestRecognizerPatternClass(t *testing.T) {
	g := mustGrammar(t, `
		Decl   = "let" name "=" value terminator .
		name   = lower { lower | "_" } .
		value  = digit { digit } | "0x" hex { hex } .
		lower  = "a" … "z" .
		digit  = "0" … "9" .
		hex    = digit | "a" … "f" .
	`)
	table, err := Compile(g, "Decl")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got, want := table.First("Decl"), []string{`"let"`}; !reflect.DeepEqual(got, want) {
		t.Errorf("First(Decl) = %v, want %v", got, want)
	}

	r := NewRecognizer(table)
	for _, input := range []string{"let max_n = 42;", "let x = 7 ."} {
		program, errs := r.Parse(input)
		if len(errs) != 0 {
			t.Errorf("Parse(%q): unexpected errors: %v", input, errs)
		}
		if program != nil {
			t.Errorf("Parse(%q): custom grammar built a Program", input)
		}
	}

	_, errs := r.Parse("let Max = 1;")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if got := errs[0].Error(); got != "unexpected token 'Max' at line 1" {
		t.Errorf("Error() = %q", got)
	}
	if want := []string{"name"}; !reflect.DeepEqual(errs[0].Expected, want) {
		t.Errorf("Expected = %v, want %v", errs[0].Expected, want)
	}
}
