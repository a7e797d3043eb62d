package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/hotedit/analyzer"
	"github.com/viant/hotedit/analyzer/active"
	"github.com/viant/hotedit/analyzer/symbol/gotypes"
	"github.com/viant/hotedit/config"
	"github.com/viant/hotedit/inspector"
	"github.com/viant/hotedit/inspector/repository"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// errRudeEdits signals that at least one document cannot be applied
var errRudeEdits = errors.New("rude edits found")

type analyzeFlags struct {
	old          string
	new          string
	capabilities string
	active       string
	format       string
	semantic     bool
	noColor      bool
}

func newAnalyzeCommand(s *session) *cobra.Command {
	flags := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze --old DIR --new DIR",
		Short: "Analyze changes between two snapshots of a program",
		Long: `Analyze matches declarations of the old and new snapshot, reports rude edits and lists the symbol edits
to apply. The exit status is 2 when any document has rude edits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.analyze(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.old, "old", "", "directory of the old snapshot")
	cmd.Flags().StringVar(&flags.new, "new", "", "directory of the new snapshot")
	cmd.Flags().StringVar(&flags.capabilities, "capabilities", "", "runtime capabilities, comma separated (overrides config)")
	cmd.Flags().StringVar(&flags.active, "active", "", "active statements file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format (text|json|yaml|msgpack)")
	cmd.Flags().BoolVar(&flags.semantic, "semantic", false, "type check Go modules for the symbol model")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored text output")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func (s *session) analyze(cmd *cobra.Command, flags *analyzeFlags) error {
	ctx := cmd.Context()
	cfg := *s.config
	if flags.capabilities != "" {
		cfg.Capabilities = []string{flags.capabilities}
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.noColor {
		cfg.Output.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	snapshot := inspector.NewFactory(&cfg.Inspector).NewSnapshot(
		inspector.WithFileService(s.fs),
		inspector.WithParallelism(cfg.Concurrency),
	)
	input := &analyzer.Input{}
	var err error
	if input.Old, err = snapshot.Load(ctx, flags.old); err != nil {
		return fmt.Errorf("failed to load old snapshot: %w", err)
	}
	if input.New, err = snapshot.Load(ctx, flags.new); err != nil {
		return fmt.Errorf("failed to load new snapshot: %w", err)
	}
	s.logger.Debug("snapshots loaded", zap.Int("old", len(input.Old)), zap.Int("new", len(input.New)))
	if flags.active != "" {
		if input.ActiveStatements, err = s.activeStatements(ctx, flags.active); err != nil {
			return err
		}
	}
	if flags.semantic {
		if err = s.semanticModels(ctx, flags, input); err != nil {
			return err
		}
	}

	options, err := cfg.Options(s.logger)
	if err != nil {
		return err
	}
	result, err := analyzer.New(options...).Analyze(ctx, input)
	if err != nil {
		return err
	}
	if err = render(cmd.OutOrStdout(), result, cfg.Output); err != nil {
		return err
	}
	if result.HasRudeEdits() {
		return errRudeEdits
	}
	return nil
}

// semanticModels type checks both snapshots when the new one belongs to a Go module
func (s *session) semanticModels(ctx context.Context, flags *analyzeFlags, input *analyzer.Input) error {
	project, err := repository.New(s.fs).DetectProject(ctx, flags.new)
	if err != nil {
		return err
	}
	if !project.IsGo() {
		s.logger.Info("semantic model unavailable, using declaration ids", zap.String("project", project.Type))
		return nil
	}
	s.logger.Debug("loading Go packages", zap.String("module", project.Name))
	oldModel, err := gotypes.Load(ctx, flags.old)
	if err != nil {
		return err
	}
	newModel, err := gotypes.Load(ctx, flags.new)
	if err != nil {
		return err
	}
	input.OldModel, input.NewModel = oldModel, newModel
	return nil
}

// activeStatements reads a list of active statements from a JSON or YAML file
func (s *session) activeStatements(ctx context.Context, URL string) ([]active.Statement, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read active statements %v: %w", URL, err)
	}
	var result []active.Statement
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".json":
		err = json.Unmarshal(data, &result)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(&result)
	default:
		return nil, fmt.Errorf("%w: unsupported active statements format %q", config.ErrInvalid, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse active statements %v: %w", URL, err)
	}
	return result, nil
}
