// Package ports defines the interfaces (ports) that connect the selection
// core to its boundary collaborators.
//
// In Hexagonal Architecture, ports are the boundaries between the
// application core and the outside world. They define what the core needs
// from external systems without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [SampleProvider]: Supplies raw (timestamp, temperature, humidity) samples
//   - [FrameSink]: Receives the essential frames selected for transmission
//   - [DecisionSink]: Consumes the annotated decision stream for presentation
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The pipeline (internal/app) depends only on these interfaces. Boundary
// adapters (internal/adapters) implement them: the weather API and CSV
// providers on the acquisition side, the HTTP/MQTT sinks and renderers on
// the presentation side. The core must not depend on any of their concrete
// implementations.
package ports
