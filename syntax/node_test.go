package syntax

import (
	"encoding/json"
	"testing"
)

func TestProgramString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			"public static void main ( ) { }",
			"('program', 'main', [])",
		},
		{
			"public static void m ( ) { n = ; }",
			"('program', 'm', [('statement', 'n', '=', ';')])",
		},
		{
			"public static void m ( ) { { n = . } }",
			"('program', 'm', [('statement', [('statement', 'n', '=', '.')])])",
		},
		{
			"public static void m ( ) { for ( n = ; ) { n = ; } }",
			"('program', 'm', [('for_loop', ('statement', 'n', '=', ';'), [('statement', 'n', '=', ';')])])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			program := mustParse(t, tt.input)
			if got := program.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestStatementString(t *testing.T) {
	program := mustParse(t, "public static void m ( ) { for ( { } ) { } }")
	loop := program.Body[0].(*ForLoop)

	if got, want := loop.String(), "('for_loop', ('statement', []), [])"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := loop.Header.(*Block).String(), "('statement', [])"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestProgramDump(t *testing.T) {
	program := mustParse(t, "public static void m ( ) { for ( n = ; ) { { n = . } } }")

	want := `Program m
  ForLoop
    Header
      Assign n = ;
    Block
      Assign n = .
`
	if got := program.Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant\n%s", got, want)
	}
}

func TestProgramJSON(t *testing.T) {
	program := mustParse(t, "public static void m ( ) {\n for ( n = ; ) { n = . }\n}")

	data, err := json.Marshal(program)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Outline
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != "program" || got.Name != "m" || got.Line != 1 {
		t.Errorf("root = %+v", got)
	}
	if len(got.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(got.Body))
	}
	loop := got.Body[0]
	if loop.Kind != "for_loop" || loop.Line != 2 {
		t.Errorf("loop = %+v", loop)
	}
	if loop.Header == nil || loop.Header.Kind != "statement" {
		t.Fatalf("header = %+v", loop.Header)
	}
	if len(loop.Body) != 1 || loop.Body[0].Tokens[2] != "." {
		t.Errorf("loop body = %+v", loop.Body)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	program := mustParse(t, "public static void m ( ) { n = ; n = ; n = ; }")

	count := 0
	completed := Walk(program.Body, func(Statement) bool {
		count++
		return count < 2
	})
	if completed {
		t.Error("Walk reported completion")
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
