package repository

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

var (
	artifactIDRegex  = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	gradleNameRegex  = regexp.MustCompile(`(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`)
	parentBlockRegex = regexp.MustCompile(`(?s)<parent>.*?</parent>`)
)

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
	// project root marker files/directories, in priority order
	markers []string
}

// New creates a new project detector instance; nil fs uses the default storage service
func New(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{
		fs: fs,
		markers: []string{
			"go.mod",           // Go projects
			"pom.xml",          // Java/Maven projects
			"build.gradle",     // Java/Gradle projects
			"build.gradle.kts", // Java/Gradle Kotlin DSL projects
			"settings.gradle",  // Java/Gradle multi projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given location and returns project info
func (d *Detector) DetectProject(ctx context.Context, location string) (*Project, error) {
	absPath, startDir, err := d.start(ctx, location)
	if err != nil {
		return nil, err
	}
	rootPath, kind := d.findProjectRoot(ctx, startDir)
	info := &Project{Type: TypeUnknown, RootPath: absPath}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = kind
	}
	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	switch info.Type {
	case TypeGo:
		module, err := d.goModule(ctx, filepath.Join(rootPath, "go.mod"))
		if err != nil {
			return nil, err
		}
		info.GoModule = module
		info.Name = module.Mod.Path
	case TypeJava:
		info.Name = d.javaProjectName(ctx, rootPath)
	case TypeGit:
		info.Name = d.gitProjectName(ctx, rootPath)
	default:
		info.Name = filepath.Base(info.RootPath)
	}
	return info, nil
}

// DetectRepository identifies the repository containing the given location
func (d *Detector) DetectRepository(ctx context.Context, location string) (*Repository, error) {
	_, startDir, err := d.start(ctx, location)
	if err != nil {
		return nil, err
	}
	info, err := d.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	if gitRoot := d.findGitRoot(ctx, startDir); gitRoot != "" {
		return &Repository{Kind: TypeGit, Root: gitRoot, Origin: d.gitOrigin(ctx, gitRoot), Info: info}, nil
	}
	return &Repository{Kind: info.Type, Root: info.RootPath, Info: info}, nil
}

// start returns the absolute location and the directory the upward search starts from
func (d *Detector) start(ctx context.Context, location string) (string, string, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return "", "", err
	}
	object, err := d.fs.Object(ctx, absPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to locate %v: %w", location, err)
	}
	if object.IsDir() {
		return absPath, absPath, nil
	}
	return absPath, filepath.Dir(absPath), nil
}

// findProjectRoot searches up from the start directory for project markers
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, string) {
	for dir := startDir; ; {
		for _, marker := range d.markers {
			if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, marker)); ok {
				return dir, projectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// findGitRoot finds the root of the git repository containing the given directory
func (d *Detector) findGitRoot(ctx context.Context, startDir string) string {
	homeDir := os.Getenv("HOME")
	for dir := startDir; ; {
		if ok, _ := d.fs.Exists(ctx, filepath.Join(dir, ".git")); ok {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

func (d *Detector) goModule(ctx context.Context, goModPath string) (*modfile.Module, error) {
	content, err := d.fs.DownloadWithURL(ctx, goModPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", goModPath, err)
	}
	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", goModPath, err)
	}
	if mod.Module == nil {
		return nil, fmt.Errorf("missing module directive in %v", goModPath)
	}
	return mod.Module, nil
}

func (d *Detector) javaProjectName(ctx context.Context, rootPath string) string {
	if data, _ := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, "pom.xml")); len(data) > 0 {
		data = parentBlockRegex.ReplaceAll(data, nil)
		if matches := artifactIDRegex.FindSubmatch(data); len(matches) == 2 {
			return string(matches[1])
		}
	}
	for _, name := range []string{"settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts"} {
		if data, _ := d.fs.DownloadWithURL(ctx, filepath.Join(rootPath, name)); len(data) > 0 {
			if matches := gradleNameRegex.FindSubmatch(data); len(matches) == 2 {
				return string(matches[1])
			}
		}
	}
	return filepath.Base(rootPath)
}

// gitOrigin extracts the origin URL from git config
func (d *Detector) gitOrigin(ctx context.Context, gitRoot string) string {
	data, err := d.fs.DownloadWithURL(ctx, filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = line == `[remote "origin"]`
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// gitProjectName extracts the repository name from the origin remote or falls back to the directory name
func (d *Detector) gitProjectName(ctx context.Context, gitRoot string) string {
	if origin := strings.TrimSuffix(d.gitOrigin(ctx, gitRoot), ".git"); origin != "" {
		if index := strings.LastIndexAny(origin, "/:"); index != -1 && index+1 < len(origin) {
			return origin[index+1:]
		}
	}
	return filepath.Base(gitRoot)
}

// projectType identifies the type of project based on the marker file
func projectType(marker string) string {
	switch marker {
	case "go.mod":
		return TypeGo
	case "pom.xml", "build.gradle", "build.gradle.kts", "settings.gradle":
		return TypeJava
	case ".git":
		return TypeGit
	default:
		return TypeUnknown
	}
}
