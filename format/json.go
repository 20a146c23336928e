package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jfrag/analysis"
)

type JSONEncoder struct {
	w      io.Writer
	opts   Options
	report *analysis.Report
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, opts: opts}
}

func (e *JSONEncoder) Encode(report *analysis.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildReportData(e.report, e.opts), "", "  ")
}
