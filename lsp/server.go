// Package lsp publishes lexical and syntax diagnostics for open documents
// over the Language Server Protocol.
package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jfrag/analysis"
	"github.com/dhamidi/jfrag/syntax"
)

const lsName = "jfrag"

const (
	SourceLexical = "jfrag-lex"
	SourceSyntax  = "jfrag-syntax"
)

var log = commonlog.GetLogger("jfrag.lsp")

type Server struct {
	analyzer *analysis.Analyzer
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewServer(version string) *Server {
	ls := &Server{
		analyzer: analysis.New(syntax.DefaultTable()),
		version:  version,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.publish(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	report := ls.analyzer.Analyze(text)
	diagnostics := Diagnostics(report)
	log.Debugf("%s: %s, %d diagnostics", uri, report.Verdict(), len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnostics converts the deciding errors of report into diagnostics.
// Syntax errors are only reported for lexically clean input.
func Diagnostics(report *analysis.Report) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	text := report.Input

	if len(report.LexicalErrors) > 0 {
		for _, err := range report.LexicalErrors {
			_, size := utf8.DecodeRuneInString(text[err.Pos.Offset:])
			end := err.Pos.Offset + size
			diagnostics = append(diagnostics, diagnostic(text, err.Pos.Offset, end, SourceLexical, err.Error()))
		}
		return diagnostics
	}

	for _, err := range report.SyntaxErrors {
		start := err.Token.Pos.Offset
		end := start + len(err.Token.Literal)
		diagnostics = append(diagnostics, diagnostic(text, start, end, SourceSyntax, err.Error()))
	}
	return diagnostics
}

func diagnostic(text string, start, end int, source, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: positionAt(text, start),
			End:   positionAt(text, end),
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// positionAt converts a byte offset into a zero-based line and UTF-16
// character position.
func positionAt(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}
	var line, character protocol.UInteger
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			character = 0
			continue
		}
		character += protocol.UInteger(utf16.RuneLen(r))
	}
	return protocol.Position{Line: line, Character: character}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
