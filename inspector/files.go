package inspector

import (
	"os"
	"path/filepath"
	"strings"
)

// GolangFiles matches Go source files and skips vendor directories
func GolangFiles(info os.FileInfo) bool {
	if info.IsDir() {
		return info.Name() != "vendor" && info.Name() != "testdata"
	}
	return filepath.Ext(info.Name()) == ".go"
}

// JavaFiles matches Java source files and skips common build directories.
func JavaFiles(info os.FileInfo) bool {
	if info.IsDir() {
		// skip typical Java build/output dirs
		name := info.Name()
		if name == "target" || name == "build" || name == "out" {
			return false
		}
		return true
	}
	return filepath.Ext(info.Name()) == ".java"
}

// SourceFiles matches Go and Java sources and skips hidden directories
func SourceFiles(info os.FileInfo) bool {
	if info.IsDir() {
		name := info.Name()
		if len(name) > 1 && strings.HasPrefix(name, ".") {
			return false
		}
		return GolangFiles(info) && JavaFiles(info)
	}
	return GolangFiles(info) || JavaFiles(info)
}
