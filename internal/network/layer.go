package network

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
)

// Layer is one fully connected layer: an affine transform followed by a
// pointwise activation.
//
// Weights are stored flattened in row-major order by input index, so the
// weight connecting input i to output o lives at index i*out + o. The
// invariants len(Weights) == in*out and len(Biases) == out hold for every
// layer produced by this package.
type Layer struct {
	in, out int
	act     Activation

	weights []float32 // [in*out], row-major by input index
	biases  []float32 // [out]
}

// NewLayer creates a layer with Xavier/Glorot-initialized weights and zero
// biases.
//
// Weights are drawn uniformly from [-bound, bound] with
// bound = sqrt(6/(in+out)), which keeps activation variance stable across
// layers.
func NewLayer(in, out int, act Activation) *Layer {
	if in <= 0 || out <= 0 {
		panic(fmt.Sprintf("network: invalid layer widths %dx%d", in, out))
	}
	if !act.Valid() {
		panic(fmt.Sprintf("network: invalid activation %q", byte(act)))
	}

	bound := math32.Sqrt(6.0 / float32(in+out))
	weights := make([]float32, in*out)
	for i := range weights {
		//nolint:gosec // math/rand is fine for weight initialization
		weights[i] = (rand.Float32()*2.0 - 1.0) * bound
	}

	return &Layer{
		in:      in,
		out:     out,
		act:     act,
		weights: weights,
		biases:  make([]float32, out),
	}
}

// Forward computes the activated output for one input vector.
//
// For each output unit o: act(bias[o] + Σ_i inputs[i]·weight[i][o]).
// Panics if len(inputs) != In(); reading out of bounds silently would
// corrupt training, so width mismatches fail fast.
func (l *Layer) Forward(inputs []float32) []float32 {
	if len(inputs) != l.in {
		panic(fmt.Sprintf("network: Layer.Forward: expected %d inputs, got %d", l.in, len(inputs)))
	}

	outputs := make([]float32, l.out)
	for o := 0; o < l.out; o++ {
		sum := l.biases[o]
		for i := 0; i < l.in; i++ {
			sum += inputs[i] * l.weights[i*l.out+o]
		}
		outputs[o] = l.act.Apply(sum)
	}
	return outputs
}

// Backward applies one SGD step to this layer and returns the loss
// gradients with respect to its inputs.
//
// inputs and outputs are the cached vectors from the forward pass that
// produced outputGradients (see Network.Forward and Trace); outputGradients
// holds ∂loss/∂output for each post-activation output unit.
//
// For each output unit, delta = gradient · Derivative(output). Input
// gradients accumulate delta·weight using the pre-update weight value;
// the weight update happens after that read, which keeps the backward
// sweep consistent.
func (l *Layer) Backward(inputs, outputs, outputGradients []float32, learningRate float32) []float32 {
	if len(inputs) != l.in {
		panic(fmt.Sprintf("network: Layer.Backward: expected %d cached inputs, got %d", l.in, len(inputs)))
	}
	if len(outputs) != l.out || len(outputGradients) != l.out {
		panic(fmt.Sprintf("network: Layer.Backward: expected %d outputs and gradients, got %d and %d",
			l.out, len(outputs), len(outputGradients)))
	}

	inputGradients := make([]float32, l.in)
	for o := 0; o < l.out; o++ {
		delta := outputGradients[o] * l.act.Derivative(outputs[o])

		l.biases[o] -= learningRate * delta

		for i := 0; i < l.in; i++ {
			idx := i*l.out + o
			inputGradients[i] += delta * l.weights[idx]
			l.weights[idx] -= learningRate * delta * inputs[i]
		}
	}
	return inputGradients
}

// In returns the input width.
func (l *Layer) In() int { return l.in }

// Out returns the output width.
func (l *Layer) Out() int { return l.out }

// Activation returns the layer's activation kind.
func (l *Layer) Activation() Activation { return l.act }

// Weights returns the flattened weight slice. The caller must not resize
// it; mutating values is how tests pin deterministic parameters.
func (l *Layer) Weights() []float32 { return l.weights }

// Biases returns the bias slice.
func (l *Layer) Biases() []float32 { return l.biases }
