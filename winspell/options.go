package winspell

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Alfex4936/winspell/internal/local"
	"github.com/Alfex4936/winspell/internal/service"
)

// Option configures construction.
type Option func(*options) error

type options struct {
	logger   *log.Logger
	provider service.Provider
}

// WithLogger sets the logger native failures are reported to at debug
// level. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("winspell: nil logger")
		}
		o.logger = logger
		return nil
	}
}

// WithProvider replaces the platform spell checking service.
func WithProvider(p service.Provider) Option {
	return func(o *options) error {
		if p == nil {
			return errors.New("winspell: nil provider")
		}
		o.provider = p
		return nil
	}
}

// WithHunspellDictDir selects the hunspell service with dictionaries from
// dir, on any platform.
func WithHunspellDictDir(dir string) Option {
	return func(o *options) error {
		o.provider = local.NewProvider(dir)
		return nil
	}
}

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o, nil
}

// open returns the configured provider or the platform default. The
// returned func releases the provider if open created it.
func (o *options) open() (service.Provider, func(), error) {
	if o.provider != nil {
		return o.provider, func() {}, nil
	}
	p, err := platformProvider()
	if err != nil {
		return nil, nil, err
	}
	return p, p.Release, nil
}
