package syntax

import "encoding/json"

// Outline is a serializable view of a parse tree node.
type Outline struct {
	Kind   string     `json:"kind" yaml:"kind"`
	Name   string     `json:"name,omitempty" yaml:"name,omitempty"`
	Line   int        `json:"line" yaml:"line"`
	Tokens []string   `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Header *Outline   `json:"header,omitempty" yaml:"header,omitempty"`
	Body   []*Outline `json:"body,omitempty" yaml:"body,omitempty"`
}

func (p *Program) Outline() *Outline {
	return &Outline{
		Kind: p.Tag(),
		Name: p.Name,
		Line: p.StartPos.Line,
		Body: outlineList(p.Body),
	}
}

func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Outline())
}

func outlineStatement(s Statement) *Outline {
	o := &Outline{Kind: s.Tag(), Line: s.Pos().Line}
	switch s := s.(type) {
	case *Assign:
		o.Tokens = []string{s.Counter.Text(), s.Op.Text(), s.Terminator.Text()}
	case *Block:
		o.Body = outlineList(s.Body)
	case *ForLoop:
		o.Header = outlineStatement(s.Header)
		o.Body = outlineList(s.Body)
	}
	return o
}

func outlineList(body []Statement) []*Outline {
	if len(body) == 0 {
		return nil
	}
	out := make([]*Outline, len(body))
	for i, s := range body {
		out[i] = outlineStatement(s)
	}
	return out
}
