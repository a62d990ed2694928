// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds a feature and LoadAll loads
// every enabled one in registration order, so features such as browse can
// be developed and tested in isolation.
package loader
