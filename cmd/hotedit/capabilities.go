package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/hotedit/analyzer/capability"
)

func newCapabilitiesCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "List runtime capability names; configured ones are marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := s.config.CapabilitySet()
			if err != nil {
				return err
			}
			for _, c := range capability.All.List() {
				mark := " "
				if enabled.Has(c) {
					mark = "*"
				}
				if _, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
