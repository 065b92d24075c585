// Package network implements a dense feedforward neural network trained
// with per-sample stochastic gradient descent.
//
// A Network is an ordered sequence of fully connected layers. Each layer
// owns a flattened row-major weight matrix and a bias vector, and applies
// a pointwise activation after the affine transform. The forward pass
// returns an explicit Trace of per-layer inputs and activated outputs;
// the backward pass consumes that trace, so FeedForward itself is pure
// and independent forward passes never share mutable state.
//
// Models are persisted in a small binary format (layer count, then per
// layer: widths, activation tag, weights, biases) written little-endian.
// See Save and Load.
package network
