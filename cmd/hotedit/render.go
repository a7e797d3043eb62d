package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/viant/hotedit/analyzer"
	"github.com/viant/hotedit/config"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// render writes the result in the configured format
func render(w io.Writer, result *analyzer.Result, output config.Output) error {
	switch output.Format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	case config.FormatMsgpack:
		encoder := msgpack.NewEncoder(w)
		return encoder.Encode(result)
	default:
		return newPrinter(w, output.NoColor).print(result)
	}
}

type printer struct {
	w       io.Writer
	path    *color.Color
	rude    *color.Color
	edit    *color.Color
	skipped *color.Color
	active  *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	ret := &printer{
		w:       w,
		path:    color.New(color.Bold),
		rude:    color.New(color.FgRed),
		edit:    color.New(color.FgGreen),
		skipped: color.New(color.FgYellow),
		active:  color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{ret.path, ret.rude, ret.edit, ret.skipped, ret.active} {
			c.DisableColor()
		}
	}
	return ret
}

func (p *printer) print(result *analyzer.Result) error {
	for _, document := range result.Documents {
		if len(document.Diagnostics) == 0 && len(document.Edits) == 0 && len(document.ActiveStatements) == 0 && !document.Skipped {
			continue
		}
		if _, err := p.path.Fprintln(p.w, document.Path); err != nil {
			return err
		}
		if document.Skipped {
			p.skipped.Fprintf(p.w, "  skipped: %s\n", document.Reason)
		}
		for _, diagnostic := range document.Diagnostics {
			p.rude.Fprintf(p.w, "  %s %s: %s\n", diagnostic.Code(), diagnostic.Span, diagnostic.Message())
		}
		for _, e := range document.Edits {
			p.edit.Fprintf(p.w, "  %s\n", e)
		}
		for i := range document.ActiveStatements {
			p.active.Fprintf(p.w, "  active %s\n", document.ActiveStatements[i].String())
		}
	}
	_, err := fmt.Fprintf(p.w, "%d documents, %d rude edits, %d edits (capabilities: %s)\n",
		len(result.Documents), len(result.Diagnostics()), len(result.Edits()), result.Capabilities)
	return err
}
