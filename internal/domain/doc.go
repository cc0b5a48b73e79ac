// Package domain contains the core domain entities and value objects for framegate.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (HTTP, MQTT, file system, logging)
// and contains only pure business logic.
//
// # Entities
//
//   - [Frame]: A single sensor reading at one instant, with a fixed-size wire image
//   - [Decision]: A frame paired with its transmission verdict and reason
//   - [Bounds]: The physical range a frame's readings must fall within
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
