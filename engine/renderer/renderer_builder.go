package renderer

import "log/slog"

// WGPUBackendOption is a functional option applied to a WGPUBackend during construction.
type WGPUBackendOption func(*WGPUBackend)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - WGPUBackendOption: a function that applies the present mode option
func WithPresentMode(mode PresentMode) WGPUBackendOption {
	return func(b *WGPUBackend) {
		b.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - WGPUBackendOption: a function that applies the MSAA option
func WithMSAA(count MSAASampleCount) WGPUBackendOption {
	return func(b *WGPUBackend) {
		b.sampleCount = count
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - WGPUBackendOption: a function that applies the force software renderer option
func WithForceSoftwareRenderer(force bool) WGPUBackendOption {
	return func(b *WGPUBackend) {
		b.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger for device and frame diagnostics.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - WGPUBackendOption: a function that applies the logger option
func WithLogger(logger *slog.Logger) WGPUBackendOption {
	return func(b *WGPUBackend) {
		b.logger = logger
	}
}
