package ports

import "github.com/sensorwire/framegate/pkg/log"

// Logger re-exports the logging abstraction so internal packages take a
// single ports import for all their boundary needs.
type Logger = log.Logger

// Field re-exports the structured logging field type.
type Field = log.Field

// Field constructors re-exported from pkg/log.
var (
	String   = log.String
	Int      = log.Int
	Uint32   = log.Uint32
	Float64  = log.Float64
	Bool     = log.Bool
	Duration = log.Duration
	Time     = log.Time
	Err      = log.Err
	Any      = log.Any
)
