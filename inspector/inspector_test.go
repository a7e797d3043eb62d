package inspector_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/hotedit/analyzer"
	"github.com/viant/hotedit/inspector"
	"github.com/viant/hotedit/inspector/graph"
)

func TestFactory_GetInspector(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantErr   bool
		inspector string
	}{
		{name: "Go file", filename: "test.go", inspector: "golang"},
		{name: "Java file", filename: "Test.java", inspector: "java"},
		{name: "upper case extension", filename: "Test.JAVA", inspector: "java"},
		{name: "JS file", filename: "test.js", wantErr: true},
		{name: "Unsupported file", filename: "test.cpp", wantErr: true},
	}
	factory := inspector.NewFactory(&graph.Config{IncludeUnexported: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insp, err := factory.GetInspector(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, inspector.ErrUnsupported)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, insp)
			assert.True(t, strings.Contains(reflect.TypeOf(insp).String(), tt.inspector))
		})
	}
}

func TestFactory_Accepts(t *testing.T) {
	factory := inspector.NewFactory(nil)
	assert.True(t, factory.Accepts("main.go"))
	assert.False(t, factory.Accepts("main_test.go"))
	assert.True(t, factory.Accepts("Main.java"))
	assert.False(t, factory.Accepts("MainTest.java"))
	assert.False(t, factory.Accepts("README.md"))

	factory = inspector.NewFactory(&graph.Config{})
	assert.True(t, factory.Accepts("main_test.go"))
}

func TestFactory_InspectPackage(t *testing.T) {
	factory := inspector.NewFactory(nil)
	trees, err := factory.InspectPackage("golang/testdata/stack")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.EqualValues(t, "golang/testdata/stack/stack.go", trees[0].Path)

	_, err = factory.InspectPackage(t.TempDir())
	assert.Error(t, err)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func TestSnapshot_Load(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"go.mod":                 "module example.com/app\n",
		"main.go":                "package main\n\nfunc main() {}\n",
		"main_test.go":           "package main\n",
		"pkg/util/util.go":       "package util\n\nfunc Sum(a, b int) int { return a + b }\n",
		"vendor/dep/dep.go":      "package dep\n",
		".hidden/skip.go":        "package skip\n",
		"java/com/app/App.java":  "package com.app;\n\npublic class App {}\n",
		"java/target/Gen.java":   "package gen;\n\nclass Gen {}\n",
		"docs/notes.txt":         "notes",
		"pkg/util/testdata/x.go": "package x\n",
	})
	trees, err := inspector.NewFactory(nil).NewSnapshot(inspector.WithFileService(afs.New())).Load(context.Background(), root)
	require.NoError(t, err)
	var paths []string
	for _, tree := range trees {
		paths = append(paths, tree.Path)
	}
	assert.EqualValues(t, []string{"java/com/app/App.java", "main.go", "pkg/util/util.go"}, paths)
	assert.EqualValues(t, "go", trees[1].Language)
	assert.EqualValues(t, "java", trees[0].Language)
}

func TestSnapshot_LoadSyntaxError(t *testing.T) {
	root := writeFiles(t, map[string]string{"broken.go": "package broken\n\nfunc {"})
	_, err := inspector.NewFactory(nil).NewSnapshot().Load(context.Background(), root)
	assert.Error(t, err)
}

func TestSnapshot_Analyze(t *testing.T) {
	before := writeFiles(t, map[string]string{
		"app/service.go": "package app\n\nfunc Run() string {\n\treturn \"a\"\n}\n",
	})
	after := writeFiles(t, map[string]string{
		"app/service.go": "package app\n\nfunc Run() string {\n\treturn \"b\"\n}\n",
	})
	snapshot := inspector.NewFactory(nil).NewSnapshot(inspector.WithParallelism(2))
	old, err := snapshot.Load(context.Background(), before)
	require.NoError(t, err)
	updated, err := snapshot.Load(context.Background(), after)
	require.NoError(t, err)

	result, err := analyzer.New().Analyze(context.Background(), &analyzer.Input{Old: old, New: updated})
	require.NoError(t, err)
	assert.False(t, result.HasRudeEdits())
	require.Len(t, result.Edits(), 1)
	assert.EqualValues(t, "M:app.Run", result.Edits()[0].Symbol().ID)
}
