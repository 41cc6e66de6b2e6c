package logjack

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Options configures a capture session.
type Options struct {
	// Root is the directory logger names are derived relative to. When
	// empty it defaults to the directory of the caller of Install.
	Root string `validate:"omitempty,dir"`

	// Ignore lists logger name prefixes whose output falls through to the
	// captured original method without consulting the registry.
	Ignore []string

	// Debug enables recognition of debug-convention lines. Empty disables
	// it; "*" captures every namespace; anything else is an enable
	// pattern with comma or space separated entries, trailing '*'
	// wildcards and '-' exclusions.
	Debug string
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func validateOptions(opts *Options) error {
	if err := getValidator().Struct(opts); err != nil {
		return errors.Wrap(err, errMsgBadOptions)
	}
	return nil
}
