package recommend

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/invkit/recount/pkg/errors"
	"github.com/invkit/recount/pkg/inventory"
	"github.com/invkit/recount/pkg/logging"
)

// Default configuration values. Callers normally override these from
// configuration; they are not wired into the engine logic anywhere else.
const (
	DefaultPrimaryWarehouse = "50"
	DefaultBufferLocation   = "ST01"
)

// options configures a Recommender.
type options struct {
	mode             inventory.Mode
	primaryWarehouse string
	bufferLocation   string
	logger           *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		mode:             inventory.ModeAdjust,
		primaryWarehouse: DefaultPrimaryWarehouse,
		bufferLocation:   DefaultBufferLocation,
		logger:           logging.Default(),
	}
}

// Option is a function that configures a Recommender.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns recommender options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithMode sets the reconciliation mode (TRANSFER or ADJUST).
func WithMode(mode inventory.Mode) Option {
	return func(o *options) error {
		parsed, err := inventory.ParseMode(string(mode))
		if err != nil {
			return err
		}
		o.mode = parsed
		return nil
	}
}

// WithPrimaryWarehouse sets the warehouse that receives the full
// default/secondary/buffer pipeline. All other warehouses get the reduced
// per-location reconciliation.
func WithPrimaryWarehouse(id string) Option {
	return func(o *options) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return &errors.ValidationError{Field: "primary_warehouse", Message: "cannot be blank"}
		}
		o.primaryWarehouse = id
		return nil
	}
}

// WithBufferLocation sets the system-only staging location code whose book
// quantity widens the default location's tolerance band.
func WithBufferLocation(code string) Option {
	return func(o *options) error {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			return &errors.ValidationError{Field: "buffer_location", Message: "cannot be blank"}
		}
		o.bufferLocation = code
		return nil
	}
}

// WithLogger sets the logger used during reconciliation.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}
