package golang

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Language is the tree language of Go documents
const Language = "go"

// Inspector builds declaration trees from Go source code
type Inspector struct {
	config *graph.Config
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{config: config}
}

// InspectSource parses Go source code and builds the declaration tree of the document at path
func (i *Inspector) InspectSource(path string, src []byte) (*graph.Tree, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	b := newFileBuilder(i.config, fset, file, path, src)
	tree, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("failed to build tree %s: %w", path, err)
	}
	return tree, nil
}

// InspectFile parses a Go source file; the file name is used as the document path
func (i *Inspector) InspectFile(filename string) (*graph.Tree, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.InspectSource(filepath.ToSlash(filename), src)
}

// InspectPackage builds trees of all Go files in a package directory, sorted by path
func (i *Inspector) InspectPackage(packagePath string) ([]*graph.Tree, error) {
	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory %s: %w", packagePath, err)
	}
	var result []*graph.Tree
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !i.Accepts(name) {
			continue
		}
		tree, err := i.InspectFile(filepath.Join(packagePath, name))
		if err != nil {
			return nil, err
		}
		result = append(result, tree)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no Go files found in package: %s", packagePath)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Path < result[b].Path })
	return result, nil
}

// Accepts reports whether the file name is inspected under the current config
func (i *Inspector) Accepts(name string) bool {
	if filepath.Ext(name) != ".go" {
		return false
	}
	return !i.config.SkipTests || !strings.HasSuffix(name, "_test.go")
}
