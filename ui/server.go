package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jfrag/analysis"
	"github.com/dhamidi/jfrag/format"
	"github.com/dhamidi/jfrag/syntax"
)

// FieldName is the form field holding the submitted source text.
const FieldName = "Expresion"

const maxInput = 1 << 20

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("jfrag.ui")

type Server struct {
	analyzer   *analysis.Analyzer
	history    *History
	staticFS   fs.FS
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

// PageData is passed to every page template.
type PageData struct {
	Input   string
	ID      string
	Report  *analysis.Report
	Recent  []*Entry
	Example string
}

const example = `public static void main() {
  for (n = ;) {
    n = .
  }
  { }
}`

func NewServer(historySize int) (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	funcMap := template.FuncMap{
		"label": func(tok syntax.Token) string {
			return string(tok.Kind.Label())
		},
		"lines": func(s string) []string {
			if s == "" {
				return nil
			}
			return strings.Split(s, "\n")
		},
		"short": func(id string) string {
			if len(id) > 8 {
				return id[:8]
			}
			return id
		},
	}

	// Parse once up front so broken templates fail at startup.
	if _, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		analyzer:   analysis.New(syntax.DefaultTable()),
		history:    NewHistory(historySize),
		staticFS:   staticFS,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap:    funcMap,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /analyses", s.handleCreateAnalysis)
	s.mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	s.mux.HandleFunc("POST /{$}", s.handleAnalyze)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) History() *History {
	return s.history
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

func (s *Server) input(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInput)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	return r.FormValue(FieldName), true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", PageData{
		Recent:  s.history.List(),
		Example: example,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, ok := s.input(w, r)
	if !ok {
		return
	}
	report := s.analyzer.Analyze(text)
	log.Infof("analyzed %d bytes: %s", len(text), report.Verdict())

	s.render(w, "index.html", PageData{
		Input:   text,
		Report:  report,
		Recent:  s.history.List(),
		Example: example,
	})
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	text, ok := s.input(w, r)
	if !ok {
		return
	}
	report := s.analyzer.Analyze(text)
	id := s.history.Add(report)
	log.Infof("stored analysis %s: %s", id, report.Verdict())
	http.Redirect(w, r, "/analyses/"+id, http.StatusSeeOther)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	entry, ok := s.history.Get(id)
	if !ok {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == "application/json" {
		w.Header().Set("Content-Type", "application/json")
		if err := format.NewJSONEncoder(w, format.Options{}).Encode(entry.Report); err != nil {
			log.Errorf("encode analysis %s: %s", id, err)
		}
		return
	}

	s.render(w, "analysis.html", PageData{
		Input:  entry.Report.Input,
		ID:     entry.ID,
		Report: entry.Report,
		Recent: s.history.List(),
	})
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

// overlayFS prefers files on disk under primaryPath so templates and assets
// can be edited without rebuilding.
func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
