package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/cottand/subst/failed"
	"github.com/cottand/subst/intern"
	"github.com/cottand/subst/internal/log"
	"github.com/cottand/subst/lower"
	"github.com/cottand/subst/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var logger = log.DefaultLogger.With("section", "cmd")

var (
	internerKind string
	logLevel     int
	dumpMetrics  bool
)

var internerKinds = []string{"table", "arena"}

// RegisterFlags adds the flags shared by every subcommand to root
func RegisterFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&internerKind, "interner", "i", "table", "interner to load fixtures into: table or arena")
	root.PersistentFlags().IntVarP(&logLevel, "log-level", "l", int(slog.LevelError), "log level")
	root.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "print interning metrics when done (table only)")
}

// session is the interner every fixture of a single invocation is loaded into
type session struct {
	in       types.Interner
	registry *prometheus.Registry
}

func newSession() (*session, error) {
	log.SetLevel(slog.Level(logLevel))
	failed.DebugErrorPrinting = slog.Level(logLevel) <= slog.LevelDebug
	switch internerKind {
	case "table":
		registry := prometheus.NewRegistry()
		return &session{
			in:       intern.NewTable(intern.TableOpts{Name: "cli", Registerer: registry}),
			registry: registry,
		}, nil
	case "arena":
		return &session{in: intern.NewArena("cli")}, nil
	}
	return nil, fmt.Errorf("unknown interner %q (expected one of %v)", internerKind, internerKinds)
}

// load reads and lowers the fixture at path, and checks that its
// substitution fits its binders
func (s *session) load(path string) (*lower.Fixture, *lower.Lowered, error) {
	fixture, err := lower.Load(path)
	if err != nil {
		return nil, nil, err
	}
	lowered, err := fixture.Lower(s.in)
	if err != nil {
		return nil, nil, describe(path, err)
	}
	if err := lowered.Check(s.in, fixture); err != nil {
		return nil, nil, describe(path, err)
	}
	logger.Debug("loaded fixture", "path", path, "binders", len(lowered.Kinds))
	return fixture, lowered, nil
}

func describe(path string, err error) error {
	var coded failed.Error
	if errors.As(err, &coded) {
		logger.Debug("fixture rejected", "path", path, "error", failed.LogValue(coded))
		return fmt.Errorf("%s: %s", path, failed.FormatWithCode(coded))
	}
	return fmt.Errorf("%s: %w", path, err)
}

func (s *session) printMetrics(w io.Writer) error {
	if !dumpMetrics {
		return nil
	}
	if s.registry == nil {
		_, err := fmt.Fprintln(w, "no metrics for this interner")
		return err
	}
	families, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}
			slices.Sort(labels)
			value := metric.GetCounter().GetValue() + metric.GetGauge().GetValue()
			if _, err := fmt.Fprintf(w, "%s%v %g\n", family.GetName(), labels, value); err != nil {
				return err
			}
		}
	}
	return nil
}
