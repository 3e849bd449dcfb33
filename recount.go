// Package recount reconciles physical cycle-count results against system
// inventory and recommends the transfers, adjustments, and investigations
// that bring the two back in line.
package recount

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/invkit/recount/internal/export"
	"github.com/invkit/recount/internal/review"
	"github.com/invkit/recount/internal/workbook"
	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/logging"
	"github.com/invkit/recount/pkg/recommend"
)

// Session runs the full reconciliation pipeline: load the source
// workbooks, join them into review lines, apply the recommendation
// engine, and export the review workbook.
type Session interface {
	// ID returns the session identifier stamped onto every review line.
	ID() string

	// Load reads and joins the recount and locations workbooks.
	Load(recountPath, locationsPath string) ([]inventory.ReviewRecord, error)

	// Reconcile applies the recommendation engine to review lines.
	Reconcile(ctx context.Context, records []inventory.ReviewRecord) (*recommend.Result, error)

	// Export writes a result to a review workbook at path.
	Export(path string, result *recommend.Result) error

	// Run chains Load, Reconcile, and Export. An empty exportPath skips
	// the export step.
	Run(ctx context.Context, recountPath, locationsPath, exportPath string) (*recommend.Result, error)
}

// session is the internal implementation of the Session interface.
type session struct {
	id     string
	logger *zerolog.Logger
	engine recommend.Recommender
}

// Option configures a Session.
type Option func(*session) error

// WithSessionID fixes the session identifier instead of generating one.
func WithSessionID(id string) Option {
	return func(s *session) error {
		if id == "" {
			return errors.NewValidationError("session_id", id, "cannot be empty")
		}
		s.id = id
		return nil
	}
}

// WithLogger sets the logger used by the session and its engine.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *session) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithEngine replaces the recommendation engine. Engine options such as
// the mode and primary warehouse are set on the engine itself.
func WithEngine(engine recommend.Recommender) Option {
	return func(s *session) error {
		if engine == nil {
			return errors.NewValidationError("engine", nil, "cannot be nil")
		}
		s.engine = engine
		return nil
	}
}

// New creates a Session with the given options. Without WithEngine the
// session uses an engine with default settings.
func New(opts ...Option) (Session, error) {
	s := &session{
		id:     uuid.NewString(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.engine == nil {
		engine, err := recommend.New(recommend.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.engine = engine
	}
	return s, nil
}

func (s *session) ID() string { return s.id }

func (s *session) Load(recountPath, locationsPath string) ([]inventory.ReviewRecord, error) {
	lines, err := workbook.LoadRecount(recountPath)
	if err != nil {
		return nil, err
	}
	masters, err := workbook.LoadLocations(locationsPath)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", s.id).
		Int("count_lines", len(lines)).
		Int("locations", len(masters)).
		Msg("loaded source workbooks")

	return review.Build(s.id, lines, masters)
}

func (s *session) Reconcile(ctx context.Context, records []inventory.ReviewRecord) (*recommend.Result, error) {
	ctx = logging.WithSessionID(ctx, s.id)
	return s.engine.Apply(ctx, records)
}

func (s *session) Export(path string, result *recommend.Result) error {
	return export.Workbook(path, result)
}

func (s *session) Run(ctx context.Context, recountPath, locationsPath, exportPath string) (*recommend.Result, error) {
	records, err := s.Load(recountPath, locationsPath)
	if err != nil {
		return nil, err
	}

	result, err := s.Reconcile(ctx, records)
	if err != nil {
		return nil, err
	}

	if exportPath != "" {
		if err := s.Export(exportPath, result); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("session_id", s.id).
			Str("path", exportPath).
			Msg("review workbook written")
	}
	return result, nil
}
