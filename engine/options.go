package engine

import "github.com/rs/zerolog"

// config holds Engine construction options, resolved by Option functions.
type config struct {
	log zerolog.Logger
}

// Option configures an Engine at construction time.
type Option interface {
	applyEngine(*config)
}

type optionFunc func(*config)

func (f optionFunc) applyEngine(c *config) { f(c) }

// WithLogger sets the engine's structured logger. Defaults to a no-op
// logger, so creating an Engine in a test never requires wiring one up.
func WithLogger(log zerolog.Logger) Option {
	return optionFunc(func(c *config) { c.log = log })
}

func resolveOptions(opts []Option) config {
	cfg := config{log: zerolog.Nop()}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.applyEngine(&cfg)
	}
	return cfg
}
