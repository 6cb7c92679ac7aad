package smartpool

import "github.com/wrenworks/go-smartpool/core"

// Options configures a Pool. The zero value of every field means "use the
// default"; see the core package constants for the concrete values.
type Options = core.Config

// Defaults re-exported from core.
const (
	DefaultMinWorkers      = core.DefaultMinWorkers
	DefaultMaxWorkers      = core.DefaultMaxWorkers
	DefaultGrowTolerance   = core.DefaultGrowTolerance
	DefaultShrinkTolerance = core.DefaultShrinkTolerance
)
