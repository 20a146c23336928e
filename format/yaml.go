package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jfrag/analysis"
)

type YAMLEncoder struct {
	w      io.Writer
	opts   Options
	report *analysis.Report
}

func NewYAMLEncoder(w io.Writer, opts Options) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: opts}
}

func (e *YAMLEncoder) Encode(report *analysis.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(buildReportData(e.report, e.opts))
}
