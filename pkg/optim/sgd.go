package optim

// SGD is gradient descent with optional heavy-ball momentum.
// The velocity buffer is sized on the first Step.
type SGD struct {
	LearningRate float64
	Momentum     float64

	velocity []float64
}

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// NewMomentumSGD returns an optimizer that keeps a decaying sum of past steps.
func NewMomentumSGD(lr, momentum float64) *SGD {
	return &SGD{LearningRate: lr, Momentum: momentum}
}

// Step updates params in place from grads, which must have the same length.
func (o *SGD) Step(params, grads []float64) {
	if o.Momentum == 0 {
		for i := range params {
			params[i] -= o.LearningRate * grads[i]
		}
		return
	}
	if len(o.velocity) != len(params) {
		o.velocity = make([]float64, len(params))
	}
	for i := range params {
		o.velocity[i] = o.Momentum*o.velocity[i] - o.LearningRate*grads[i]
		params[i] += o.velocity[i]
	}
}

// Reset forgets accumulated momentum.
func (o *SGD) Reset() { o.velocity = nil }
