// Package metrics accumulates training throughput statistics for
// progress logging.
package metrics

import "time"

// Window accumulates sample counts and train time across steps.
type Window struct {
	samples   int
	trainTime time.Duration
}

// Record adds one training step to the window.
func (w *Window) Record(samples int, trainTime time.Duration) {
	w.samples += samples
	w.trainTime += trainTime
}

// Snapshot returns the aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Samples: w.samples}
	if w.trainTime > 0 {
		snap.SamplesPerSec = float64(w.samples) / w.trainTime.Seconds()
	}

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics for one window.
type Snapshot struct {
	Samples       int
	SamplesPerSec float64
}
