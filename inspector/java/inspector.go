package java

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/hotedit/inspector/graph"
)

// Language is the tree language of Java documents
const Language = "java"

// ErrSyntax is returned for sources tree-sitter cannot parse without errors
var ErrSyntax = errors.New("syntax error")

// Inspector builds declaration trees from Java source code
type Inspector struct {
	config *graph.Config
}

// NewInspector creates a new Java Inspector with the provided configuration
func NewInspector(config *graph.Config) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Inspector{config: config}
}

// InspectSource parses Java source code and builds the declaration tree of the document at path
func (i *Inspector) InspectSource(path string, src []byte) (*graph.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()
	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, ErrSyntax)
	}
	b := &fileBuilder{
		config:  i.config,
		src:     src,
		builder: graph.NewBuilder(path, string(src)).SetLanguage(Language),
	}
	b.program(root)
	return b.builder.Build(), nil
}

// InspectFile parses a Java source file; the file name is used as the document path
func (i *Inspector) InspectFile(filename string) (*graph.Tree, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.InspectSource(filepath.ToSlash(filename), src)
}

// InspectPackage builds trees of all Java files in a package directory, sorted by path
func (i *Inspector) InspectPackage(packagePath string) ([]*graph.Tree, error) {
	entries, err := os.ReadDir(packagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory %s: %w", packagePath, err)
	}
	var result []*graph.Tree
	for _, entry := range entries {
		if entry.IsDir() || !i.Accepts(entry.Name()) {
			continue
		}
		tree, err := i.InspectFile(filepath.Join(packagePath, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("error processing %s: %w", entry.Name(), err)
		}
		result = append(result, tree)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no Java files found in package: %s", packagePath)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Path < result[b].Path })
	return result, nil
}

// Accepts reports whether the file name is inspected under the current config
func (i *Inspector) Accepts(name string) bool {
	if filepath.Ext(name) != ".java" {
		return false
	}
	if !i.config.SkipTests {
		return true
	}
	base := strings.TrimSuffix(name, ".java")
	for _, suffix := range []string{"Test", "Tests", "IT", "ITCase"} {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	return true
}
