package network

import (
	"fmt"
)

// Network is an ordered sequence of dense layers. Adjacent layers have
// matching widths: layers[i].Out() == layers[i+1].In().
type Network struct {
	layers []*Layer
}

// Trace records the per-layer inputs and activated outputs of one forward
// pass. It is produced by Forward and consumed by the backward sweep in
// Train; threading it explicitly keeps the layers free of hidden per-call
// state, so concurrent forward passes on one Network are safe.
type Trace struct {
	inputs  [][]float32 // inputs[i]: what layer i saw
	outputs [][]float32 // outputs[i]: layer i's post-activation result
}

// Output returns the final layer's activated output.
func (t *Trace) Output() []float32 {
	return t.outputs[len(t.outputs)-1]
}

// New creates a network from a topology of layer widths, e.g.
// New(784, 128, 10).
//
// At least two widths are required. Hidden layers use Tanh and the output
// layer uses Sigmoid; use NewWithActivations for an explicit per-layer
// choice.
func New(topology ...int) *Network {
	acts := make([]Activation, len(topology)-1)
	for i := range acts {
		if i == len(acts)-1 {
			acts[i] = Sigmoid
		} else {
			acts[i] = Tanh
		}
	}
	return NewWithActivations(topology, acts)
}

// NewWithActivations creates a network from a topology and one activation
// per layer; len(acts) must equal len(topology)-1.
func NewWithActivations(topology []int, acts []Activation) *Network {
	if len(topology) < 2 {
		panic(fmt.Sprintf("network: topology needs at least 2 widths, got %d", len(topology)))
	}
	if len(acts) != len(topology)-1 {
		panic(fmt.Sprintf("network: got %d activations for %d layers", len(acts), len(topology)-1))
	}

	layers := make([]*Layer, 0, len(topology)-1)
	for i := 0; i < len(topology)-1; i++ {
		layers = append(layers, NewLayer(topology[i], topology[i+1], acts[i]))
	}
	return &Network{layers: layers}
}

// FeedForward runs inputs through every layer in order and returns the
// final layer's output. Pure: no state survives the call.
func (n *Network) FeedForward(inputs []float32) []float32 {
	for _, layer := range n.layers {
		inputs = layer.Forward(inputs)
	}
	return inputs
}

// Forward runs inputs through every layer and additionally returns the
// Trace needed for a backward pass.
func (n *Network) Forward(inputs []float32) ([]float32, *Trace) {
	trace := &Trace{
		inputs:  make([][]float32, len(n.layers)),
		outputs: make([][]float32, len(n.layers)),
	}
	for i, layer := range n.layers {
		trace.inputs[i] = inputs
		inputs = layer.Forward(inputs)
		trace.outputs[i] = inputs
	}
	return inputs, trace
}

// Train performs one supervised SGD step on a single sample.
//
// The initial gradient for output unit k is results[k] − targets[k], the
// derivative of unnormalized squared error. It is deliberately not scaled
// by 1/N or 0.5; rescaling would change convergence for a given learning
// rate relative to the historical behavior. The gradient is then swept
// backward through the layers, each Backward call updating that layer in
// place and producing the gradient for the layer below.
func (n *Network) Train(inputs, targets []float32, learningRate float32) {
	results, trace := n.Forward(inputs)

	if len(targets) != len(results) {
		panic(fmt.Sprintf("network: Train: expected %d targets, got %d", len(results), len(targets)))
	}

	gradients := make([]float32, len(results))
	for k := range results {
		gradients[k] = results[k] - targets[k]
	}

	for i := len(n.layers) - 1; i >= 0; i-- {
		gradients = n.layers[i].Backward(trace.inputs[i], trace.outputs[i], gradients, learningRate)
	}
}

// Layers returns the network's layers in order.
func (n *Network) Layers() []*Layer { return n.layers }

// Topology returns the layer widths, e.g. [784 128 10].
func (n *Network) Topology() []int {
	if len(n.layers) == 0 {
		return nil
	}
	widths := make([]int, 0, len(n.layers)+1)
	widths = append(widths, n.layers[0].In())
	for _, layer := range n.layers {
		widths = append(widths, layer.Out())
	}
	return widths
}
