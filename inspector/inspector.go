// Package inspector builds declaration trees from source documents of supported languages.
package inspector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/hotedit/inspector/golang"
	"github.com/viant/hotedit/inspector/graph"
	"github.com/viant/hotedit/inspector/java"
)

// ErrUnsupported is returned for documents of languages without an inspector
var ErrUnsupported = errors.New("unsupported file type")

// Inspector builds declaration trees of one language
type Inspector interface {
	// InspectSource parses source code of the document at path
	InspectSource(path string, src []byte) (*graph.Tree, error)

	// InspectFile parses a source file; the file name is used as the document path
	InspectFile(filename string) (*graph.Tree, error)

	// InspectPackage builds trees of all accepted files in a package directory
	InspectPackage(packagePath string) ([]*graph.Tree, error)

	// Accepts reports whether a file name is inspected
	Accepts(name string) bool
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *graph.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// Config returns the inspector config
func (f *Factory) Config() *graph.Config {
	return f.config
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".go":
		return golang.NewInspector(f.config), nil
	case ".java":
		return java.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Accepts reports whether any inspector handles the file name
func (f *Factory) Accepts(name string) bool {
	inspector, err := f.GetInspector(name)
	if err != nil {
		return false
	}
	return inspector.Accepts(name)
}

// InspectSource is a convenience method that gets the inspector for path and parses src
func (f *Factory) InspectSource(path string, src []byte) (*graph.Tree, error) {
	inspector, err := f.GetInspector(path)
	if err != nil {
		return nil, err
	}
	return inspector.InspectSource(path, src)
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) (*graph.Tree, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}

// InspectPackage is a convenience method that gets the appropriate inspector for a package
func (f *Factory) InspectPackage(packagePath string) ([]*graph.Tree, error) {
	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if inspector, err := f.GetInspector(entry.Name()); err == nil {
			return inspector.InspectPackage(packagePath)
		}
	}
	return nil, fmt.Errorf("unable to determine language for package: %s", packagePath)
}
