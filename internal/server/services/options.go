package services

import (
	"time"

	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server/models"
)

// DefaultOpTimeout bounds one lifecycle operation, retries included.
const DefaultOpTimeout = 5 * time.Second

type settings struct {
	clock      Clock
	ids        IDGen
	log        logging.Logger
	loanPeriod time.Duration
	opTimeout  time.Duration
	retry      []RetryOption
}

func newSettings(opts []Option) settings {
	s := settings{
		clock:      realClock{},
		ids:        newULIDGen(),
		log:        logging.Discard(),
		loanPeriod: models.DefaultLoanPeriod,
		opTimeout:  DefaultOpTimeout,
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Option configures a LifecycleManager or a CatalogService.
type Option func(*settings)

func WithClock(c Clock) Option {
	return func(s *settings) { s.clock = c }
}

func WithIDGen(g IDGen) Option {
	return func(s *settings) { s.ids = g }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithLoanPeriod sets the due date offset used when a borrower gives none.
// Non-positive values are ignored.
func WithLoanPeriod(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.loanPeriod = d
		}
	}
}

// WithOpTimeout sets the deadline of each lifecycle operation. Non-positive
// values are ignored.
func WithOpTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// WithRetry tunes how lost conditional updates are retried.
func WithRetry(opts ...RetryOption) Option {
	return func(s *settings) { s.retry = append(s.retry, opts...) }
}
