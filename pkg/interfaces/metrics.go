package interfaces

import "time"

// RenderMetrics receives timing and outcome signals from the renderer.
type RenderMetrics interface {
	ObserveRender(duration time.Duration, locale string)
	IncrementDirective(kind string)
	IncrementMissing(kind string)
	IncrementError(kind string)
}
