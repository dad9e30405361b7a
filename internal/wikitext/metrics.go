package wikitext

import (
	"time"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// NoOpMetrics returns a RenderMetrics that discards every signal.
func NoOpMetrics() interfaces.RenderMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveRender(time.Duration, string) {}
func (noopMetrics) IncrementDirective(string)           {}
func (noopMetrics) IncrementMissing(string)             {}
func (noopMetrics) IncrementError(string)               {}
