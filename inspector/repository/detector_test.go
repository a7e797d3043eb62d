package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/inspector/repository"
)

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

func TestDetector_DetectProject(t *testing.T) {
	var testCases = []struct {
		description  string
		files        map[string]string
		location     string
		expectType   string
		expectName   string
		expectRel    string
		expectModule string
	}{
		{
			description:  "go module from package dir",
			files:        map[string]string{"go.mod": "module example.com/app\n\ngo 1.22\n", "pkg/util/util.go": "package util\n"},
			location:     "pkg/util",
			expectType:   repository.TypeGo,
			expectName:   "example.com/app",
			expectRel:    "pkg/util",
			expectModule: "example.com/app",
		},
		{
			description: "go module from file",
			files:       map[string]string{"go.mod": "module example.com/app\n", "main.go": "package main\n"},
			location:    "main.go",
			expectType:  repository.TypeGo,
			expectName:  "example.com/app",
			expectRel:   "main.go",
		},
		{
			description: "maven project skips parent artifact",
			files: map[string]string{
				"pom.xml":                    "<project><parent><artifactId>base</artifactId></parent><artifactId>service</artifactId></project>",
				"src/main/java/com/App.java": "package com;\n",
			},
			location:   "src/main/java/com",
			expectType: repository.TypeJava,
			expectName: "service",
			expectRel:  "src/main/java/com",
		},
		{
			description: "gradle settings",
			files:       map[string]string{"settings.gradle": "rootProject.name = 'billing'\n"},
			location:    ".",
			expectType:  repository.TypeJava,
			expectName:  "billing",
			expectRel:   ".",
		},
		{
			description: "git repository",
			files:       map[string]string{".git/config": "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = git@github.com:acme/widgets.git\n"},
			location:    ".",
			expectType:  repository.TypeGit,
			expectName:  "widgets",
			expectRel:   ".",
		},
	}
	detector := repository.New(nil)
	for _, testCase := range testCases {
		root := writeFiles(t, testCase.files)
		project, err := detector.DetectProject(context.Background(), filepath.Join(root, testCase.location))
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expectType, project.Type, testCase.description)
		assert.EqualValues(t, testCase.expectName, project.Name, testCase.description)
		assert.EqualValues(t, testCase.expectRel, project.RelativePath, testCase.description)
		assert.EqualValues(t, root, project.RootPath, testCase.description)
		if testCase.expectModule != "" {
			require.NotNil(t, project.GoModule, testCase.description)
			assert.EqualValues(t, testCase.expectModule, project.GoModule.Mod.Path, testCase.description)
			assert.True(t, project.IsGo(), testCase.description)
		}
	}
}

func TestDetector_DetectRepository(t *testing.T) {
	root := writeFiles(t, map[string]string{
		".git/config": "[remote \"origin\"]\n\turl = https://github.com/acme/widgets.git\n",
		"api/go.mod":  "module github.com/acme/widgets/api\n",
		"api/api.go":  "package api\n",
	})
	repo, err := repository.New(nil).DetectRepository(context.Background(), filepath.Join(root, "api"))
	require.NoError(t, err)
	assert.EqualValues(t, repository.TypeGit, repo.Kind)
	assert.EqualValues(t, root, repo.Root)
	assert.EqualValues(t, "https://github.com/acme/widgets.git", repo.Origin)
	require.NotNil(t, repo.Info)
	assert.EqualValues(t, repository.TypeGo, repo.Info.Type)
	assert.EqualValues(t, filepath.Join(root, "api"), repo.Info.RootPath)
}

func TestDetector_Errors(t *testing.T) {
	detector := repository.New(nil)
	_, err := detector.DetectProject(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	root := writeFiles(t, map[string]string{"go.mod": "go 1.22\n"})
	_, err = detector.DetectProject(context.Background(), root)
	assert.Error(t, err)
}
