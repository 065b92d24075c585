package network

import (
	"github.com/chewxy/math32"
)

// Activation identifies the pointwise nonlinearity applied by a layer.
//
// The numeric values double as the one-byte tags used by the model file
// format, so they must not be changed.
type Activation byte

// Supported activations.
const (
	Sigmoid   Activation = 's'
	Tanh      Activation = 't'
	ReLU      Activation = 'r'
	LeakyReLU Activation = 'l'
)

const leakySlope = 0.01

// Apply computes the activation at x.
func (a Activation) Apply(x float32) float32 {
	switch a {
	case Sigmoid:
		return 1.0 / (1.0 + math32.Exp(-x))
	case Tanh:
		return math32.Tanh(x)
	case ReLU:
		return math32.Max(0, x)
	case LeakyReLU:
		if x > 0 {
			return x
		}
		return leakySlope * x
	default:
		return x
	}
}

// Derivative computes the activation derivative expressed in terms of the
// activated output y rather than the pre-activation input. All supported
// activations are cheaper to differentiate this way:
//
//	Sigmoid:   y·(1−y)
//	Tanh:      1−y²
//	ReLU:      1 if y>0 else 0
//	LeakyReLU: 1 if y>0 else 0.01
func (a Activation) Derivative(y float32) float32 {
	switch a {
	case Sigmoid:
		return y * (1.0 - y)
	case Tanh:
		return 1.0 - y*y
	case ReLU:
		if y > 0 {
			return 1
		}
		return 0
	case LeakyReLU:
		if y > 0 {
			return 1
		}
		return leakySlope
	default:
		return 1
	}
}

// Valid reports whether a is one of the supported activation tags.
func (a Activation) Valid() bool {
	switch a {
	case Sigmoid, Tanh, ReLU, LeakyReLU:
		return true
	}
	return false
}

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case LeakyReLU:
		return "leaky_relu"
	default:
		return "unknown"
	}
}
