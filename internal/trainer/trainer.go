// Package trainer drives epoch-wise training of a digit classifier:
// shuffling, on-the-fly augmentation, progress logging and held-out
// evaluation.
package trainer

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Its-brito/neuralnetwork/internal/augment"
	"github.com/Its-brito/neuralnetwork/internal/metrics"
	"github.com/Its-brito/neuralnetwork/internal/mnist"
	"github.com/Its-brito/neuralnetwork/internal/network"
)

// Digit images are a fixed 28×28 grid.
const (
	imageWidth  = 28
	imageHeight = 28
)

// Augmentation controls synthesis of training variants. Copies is the
// number of variants per sample (0 disables augmentation); each variant
// is shifted by up to ±MaxShift pixels and zoomed by a factor drawn from
// [1−MaxZoom, 1+MaxZoom].
type Augmentation struct {
	Copies   int
	MaxShift int
	MaxZoom  float32
}

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Train []mnist.Sample
	Test  []mnist.Sample

	Topology     []int
	Epochs       int
	LearningRate float32
	Seed         int64
	LogEvery     int
	Augment      Augmentation
}

// Run trains a freshly initialized network and returns it.
//
// Per epoch the sample order is reshuffled, each sample (plus any
// augmented variants) drives one SGD step, and accuracy on the held-out
// set is logged. Augmented variants are synthesized on the fly and
// discarded; only the original samples are retained.
func Run(cfg RunConfig) (*network.Network, error) {
	if len(cfg.Train) == 0 {
		return nil, errors.New("trainer: empty training set")
	}
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("trainer: epochs must be > 0 (got %d)", cfg.Epochs)
	}
	if cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("trainer: learning rate must be > 0 (got %g)", cfg.LearningRate)
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 10000
	}

	net := network.New(cfg.Topology...)
	rng := rand.New(rand.NewSource(cfg.Seed))

	order := make([]int, len(cfg.Train))
	for i := range order {
		order[i] = i
	}

	var window metrics.Window
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for step, idx := range order {
			sample := cfg.Train[idx]

			start := time.Now()
			net.Train(sample.Pixels, sample.Target, cfg.LearningRate)
			trained := 1
			for c := 0; c < cfg.Augment.Copies; c++ {
				net.Train(synthesize(rng, sample.Pixels, cfg.Augment), sample.Target, cfg.LearningRate)
				trained++
			}
			window.Record(trained, time.Since(start))

			if (step+1)%cfg.LogEvery == 0 {
				snap := window.Snapshot()
				log.Printf("epoch=%d step=%d samples_per_sec=%.0f loss=%.4f",
					epoch, step+1, snap.SamplesPerSec, sampleLoss(net, sample))
			}
		}

		if len(cfg.Test) > 0 {
			acc, loss := Evaluate(net, cfg.Test)
			log.Printf("epoch=%d test_acc=%.4f test_loss=%.4f", epoch, acc, loss)
		}
	}

	return net, nil
}

// synthesize produces one augmented variant of pixels: a random shift
// within ±MaxShift followed by a random zoom within ±MaxZoom.
func synthesize(rng *rand.Rand, pixels []float32, aug Augmentation) []float32 {
	out := pixels
	if aug.MaxShift > 0 {
		dx := rng.Intn(2*aug.MaxShift+1) - aug.MaxShift
		dy := rng.Intn(2*aug.MaxShift+1) - aug.MaxShift
		out = augment.Translate(out, dx, dy, imageWidth, imageHeight)
	}
	if aug.MaxZoom > 0 {
		scale := 1 + (rng.Float32()*2-1)*aug.MaxZoom
		out = augment.Scale(out, scale, imageWidth, imageHeight, imageWidth, imageHeight)
	}
	if aug.MaxShift == 0 && aug.MaxZoom == 0 {
		// No transform requested; still return a copy so the caller can
		// never alias the original sample.
		out = append([]float32(nil), pixels...)
	}
	return out
}

// Evaluate computes argmax accuracy and average squared-error loss of
// the network over a sample set.
func Evaluate(net *network.Network, samples []mnist.Sample) (accuracy, avgLoss float64) {
	if len(samples) == 0 {
		return 0, 0
	}

	correct := 0
	var lossSum float64
	for _, sample := range samples {
		out := net.FeedForward(sample.Pixels)
		if Argmax(out) == sample.Label {
			correct++
		}
		for k := range out {
			d := float64(out[k] - sample.Target[k])
			lossSum += d * d
		}
	}
	return float64(correct) / float64(len(samples)), lossSum / float64(len(samples))
}

// Argmax returns the index of the largest value.
func Argmax(values []float32) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

func sampleLoss(net *network.Network, sample mnist.Sample) float64 {
	out := net.FeedForward(sample.Pixels)
	var sum float64
	for k := range out {
		d := float64(out[k] - sample.Target[k])
		sum += d * d
	}
	return sum
}
