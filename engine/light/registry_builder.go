package light

import "log/slog"

// RegistryBuilderOption is a function that configures a Registry during construction.
type RegistryBuilderOption func(*registryImpl)

// WithLogger is an option builder that sets the logger used for overflow diagnostics.
// When unset the registry logs through the shared engine logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - RegistryBuilderOption: a function that applies the logger option to a registryImpl
func WithLogger(logger *slog.Logger) RegistryBuilderOption {
	return func(r *registryImpl) {
		r.logger = logger
	}
}
