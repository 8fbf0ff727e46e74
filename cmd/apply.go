package cmd

import (
	"fmt"

	"github.com/cottand/subst/memo"
	"github.com/cottand/subst/types"
	"github.com/spf13/cobra"
)

var ApplyCmd = &cobra.Command{
	Use:          "apply fixture.yaml...",
	Short:        "Instantiate the binders of each fixture with its substitution",
	RunE:         runApply,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var useMemo *bool

func init() {
	useMemo = ApplyCmd.Flags().Bool("memo", false, "cache substitutions into types across fixtures")
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	var applier *memo.Applier
	if *useMemo {
		applier, err = memo.NewApplier(s.in, memo.Opts{Metrics: dumpMetrics})
		if err != nil {
			return err
		}
		defer applier.Close()
	}

	out := cmd.OutOrStdout()
	for _, path := range args {
		_, lowered, err := s.load(path)
		if err != nil {
			return err
		}
		value, subst, result := lowered.Render(s.in)
		// the cache applies substitutions in place, which only agrees with
		// removing the binder when nothing refers past it
		if applier != nil && lowered.Ty != nil && !types.HasVarsAtOrAbove(s.in, lowered.Ty, 1) {
			result = applier.Apply(lowered.Subst, lowered.Ty).Debug(s.in)
			applier.Wait()
		}
		_, err = fmt.Fprintf(out, "%s\n  value:  %s\n  subst:  %s\n  result: %s\n", path, value, subst, result)
		if err != nil {
			return err
		}
	}
	if applier != nil && dumpMetrics {
		if _, err := fmt.Fprintf(out, "memo hits %d misses %d\n", applier.Hits(), applier.Misses()); err != nil {
			return err
		}
	}
	return s.printMetrics(out)
}
