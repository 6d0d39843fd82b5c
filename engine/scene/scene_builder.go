package scene

import "log/slog"

// BuilderOption is a functional option for configuring a Builder.
// Use the With* functions to create options.
type BuilderOption func(b *builderImpl)

// WithLogger sets the logger used for slot diagnostics.
// Falls back to the package-wide logger when unset.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - BuilderOption: option function to apply
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *builderImpl) {
		b.logger = logger
	}
}
