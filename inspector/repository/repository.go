// Package repository detects project roots and project metadata of program snapshots.
package repository

import "golang.org/x/mod/modfile"

// Project types
const (
	TypeGo      = "go"
	TypeJava    = "java"
	TypeGit     = "git"
	TypeUnknown = "unknown"
)

type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}

// Project represents information about a detected project
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (go, java, git)
	Name         string // Name of the project (extracted from config files)
	RelativePath string // Path from project root to the inspected location
	GoModule     *modfile.Module
}

// IsGo reports whether the project is a Go module
func (p *Project) IsGo() bool {
	return p.Type == TypeGo
}
