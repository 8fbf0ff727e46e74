package cmd

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cottand/subst/types"
	"github.com/cottand/subst/util"
	"github.com/spf13/cobra"
)

var InspectCmd = &cobra.Command{
	Use:          "inspect fixture.yaml...",
	Short:        "Show the free variables and type parameters of each fixture",
	RunE:         runInspect,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, path := range args {
		_, lowered, err := s.load(path)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "%s\n%s", path, inspect(s.in, lowered.Value(), lowered.Subst)); err != nil {
			return err
		}
	}
	return s.printMetrics(out)
}

// inspect reports on value with its binder skipped, so that the parameters
// of the binder show up as free ^0.i variables
func inspect(in types.Interner, value types.Visitable, subst types.Substitution) string {
	sb := &strings.Builder{}
	freeVars := util.MapIter(slices.Values(types.SortedFreeVars(in, value)), types.BoundVar.String)
	fmt.Fprintf(sb, "  free vars:       %s\n", join(freeVars))
	fmt.Fprintf(sb, "  identity subst:  %t\n", subst.IsIdentity(in))
	fmt.Fprintf(sb, "  subst types:     %s\n", join(debugAll(in, subst.TypeParameters(in))))

	inference := types.HasInferenceVars(in, value)
	for t := range subst.TypeParameters(in) {
		inference = inference || types.HasInferenceVars(in, t)
	}
	fmt.Fprintf(sb, "  inference vars:  %t\n", inference)
	return sb.String()
}

func debugAll(in types.Interner, tys iter.Seq[types.Ty]) iter.Seq[string] {
	return util.MapIter(tys, func(t types.Ty) string { return t.Debug(in) })
}

func join(items iter.Seq[string]) string {
	collected := slices.Collect(items)
	if len(collected) == 0 {
		return "-"
	}
	return strings.Join(collected, ", ")
}
