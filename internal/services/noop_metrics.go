package services

import "time"

// noopMetricsRecorder discards every measurement. The CLI and tests use it so
// runs do not register collectors against the global prometheus registry.
type noopMetricsRecorder struct{}

func NewNoopMetricsRecorder() MetricsRecorderInterface {
	return &noopMetricsRecorder{}
}

func (noopMetricsRecorder) IncrementCounter(string, map[string]string) {}

func (noopMetricsRecorder) RecordProcessingTime(string, time.Duration) {}

func (noopMetricsRecorder) RecordGauge(string, float64, map[string]string) {}
