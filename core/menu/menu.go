package menu

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/sitekit/core/hierarchy"
	"github.com/dmitrymomot/sitekit/core/logger"
)

// ErrSource wraps failures reported by the row source.
var ErrSource = errors.New("menu source failure")

// Node is one navigation entry in the requested culture.
type Node struct {
	ID          uuid.UUID     `json:"id"`
	ParentID    uuid.NullUUID `json:"parent_id"`
	Path        string        `json:"path"`
	Seq         int           `json:"seq"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Controller  string        `json:"controller"`
	Action      string        `json:"action"`
	Enabled     bool          `json:"enabled"`
}

// Href returns the link target for the node, or "" when it has no route.
func (n Node) Href() string {
	if n.Controller == "" {
		return ""
	}
	if n.Action == "" {
		return "/" + n.Controller
	}
	return "/" + n.Controller + "/" + n.Action
}

// Source reads the flat, joined menu rows for a culture.
// Missing translations yield empty Name and Description.
type Source interface {
	MenuRows(ctx context.Context, culture string) ([]Node, error)
}

// Assembler builds the menu forest.
type Assembler struct {
	source  Source
	logger  *slog.Logger
	dropped prometheus.Counter
}

// Option configures an Assembler.
type Option func(*assemblerOptions)

type assemblerOptions struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the assembler logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *assemblerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer registers the assembler metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *assemblerOptions) {
		o.registerer = reg
	}
}

// NewAssembler creates an Assembler reading from source.
func NewAssembler(source Source, opts ...Option) *Assembler {
	o := &assemblerOptions{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	return &Assembler{
		source: source,
		logger: o.logger,
		dropped: promauto.With(o.registerer).NewCounter(prometheus.CounterOpts{
			Namespace: "sitekit",
			Subsystem: "menu",
			Name:      "nodes_dropped_total",
			Help:      "Menu rows dropped because their parent is not reachable from a root.",
		}),
	}
}

// Build returns the menu forest for culture.
func (a *Assembler) Build(ctx context.Context, culture string) ([]*hierarchy.Node[Node], error) {
	rows, err := a.source.MenuRows(ctx, culture)
	if err != nil {
		return nil, errors.Join(ErrSource, fmt.Errorf("menu rows for %q: %w", culture, err))
	}

	slices.SortStableFunc(rows, func(x, y Node) int {
		return cmp.Compare(x.Seq, y.Seq)
	})

	forest := hierarchy.Build(rows,
		func(n Node) uuid.UUID { return n.ID },
		func(n Node) (uuid.UUID, bool) { return n.ParentID.UUID, n.ParentID.Valid },
	)

	if dropped := len(rows) - hierarchy.Count(forest); dropped > 0 {
		a.dropped.Add(float64(dropped))
		a.logger.DebugContext(ctx, "dropped unreachable menu rows",
			logger.Component("menu"),
			logger.Culture(culture),
			logger.Count("dropped", dropped),
		)
	}

	return forest, nil
}
