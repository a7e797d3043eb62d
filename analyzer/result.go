package analyzer

import (
	"github.com/viant/hotedit/analyzer/active"
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/analyzer/semantic"
)

// DocumentResult holds either rude diagnostics or symbol edits of one document
type DocumentResult struct {
	Path             string             `json:"path" yaml:"path" msgpack:"path"`
	Diagnostics      []rude.Diagnostic  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	Edits            []*semantic.Edit   `json:"edits,omitempty" yaml:"edits,omitempty" msgpack:"edits,omitempty"`
	ActiveStatements []active.Statement `json:"activeStatements,omitempty" yaml:"activeStatements,omitempty" msgpack:"activeStatements,omitempty"`
	Skipped          bool               `json:"skipped,omitempty" yaml:"skipped,omitempty" msgpack:"skipped,omitempty"`
	Reason           string             `json:"reason,omitempty" yaml:"reason,omitempty" msgpack:"reason,omitempty"`
}

// HasRudeEdits reports whether the document cannot be applied
func (d *DocumentResult) HasRudeEdits() bool {
	return len(d.Diagnostics) > 0
}

// Result is the outcome of one analysis run
type Result struct {
	RunID        string            `json:"runId" yaml:"runId" msgpack:"runId"`
	Capabilities capability.Set    `json:"capabilities" yaml:"capabilities" msgpack:"capabilities"`
	Documents    []*DocumentResult `json:"documents" yaml:"documents" msgpack:"documents"`
}

// HasRudeEdits reports whether any document has rude edits
func (r *Result) HasRudeEdits() bool {
	for _, document := range r.Documents {
		if document.HasRudeEdits() {
			return true
		}
	}
	return false
}

// Document returns the result of a document
func (r *Result) Document(path string) *DocumentResult {
	for _, document := range r.Documents {
		if document.Path == path {
			return document
		}
	}
	return nil
}

// Diagnostics returns diagnostics of all documents in path order
func (r *Result) Diagnostics() []rude.Diagnostic {
	var result []rude.Diagnostic
	for _, document := range r.Documents {
		result = append(result, document.Diagnostics...)
	}
	return result
}

// Edits returns symbol edits of all documents in application order
func (r *Result) Edits() []*semantic.Edit {
	lists := make([][]*semantic.Edit, 0, len(r.Documents))
	for _, document := range r.Documents {
		lists = append(lists, document.Edits)
	}
	return semantic.Merge(lists...)
}

// ActiveStatements returns remapped active statements of all documents
func (r *Result) ActiveStatements() []active.Statement {
	var result []active.Statement
	for _, document := range r.Documents {
		result = append(result, document.ActiveStatements...)
	}
	return result
}
