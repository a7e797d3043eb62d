package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/hotedit/config"
	"go.uber.org/zap"
)

// session holds state shared by subcommands once persistent flags are parsed
type session struct {
	fs        afs.Service
	configURL string
	verbose   bool
	config    *config.Config
	logger    *zap.Logger
}

func newSession() *session {
	return &session{fs: afs.New()}
}

// command builds the root command; callers sync the session once it returns
func (s *session) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "hotedit",
		Short:         "Hot edit analysis of two program snapshots",
		Long:          `hotedit decides which source changes can be applied to a running program and lists the symbol edits to apply`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&s.configURL, "config", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newAnalyzeCommand(s))
	root.AddCommand(newCapabilitiesCommand(s))
	return root
}

func (s *session) init(cmd *cobra.Command) error {
	s.config = config.Default()
	if s.configURL != "" {
		cfg, err := config.Load(cmd.Context(), s.fs, s.configURL)
		if err != nil {
			return err
		}
		s.config = cfg
	}
	if s.logger != nil {
		return nil
	}
	logger, err := s.config.Logger(s.verbose)
	if err != nil {
		return err
	}
	s.logger = logger
	return nil
}

// sync flushes buffered log entries; cobra skips post run hooks when a command fails
func (s *session) sync() {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}
