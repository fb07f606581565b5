package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"edakit/pkg/optim"
)

const (
	SolverNewton = "newton"
	SolverSGD    = "sgd"
)

// LogisticRegression is an L2-penalized binary logistic regression.
// The intercept is not penalized.
type LogisticRegression struct {
	C       float64 // inverse regularization strength, <= 0 disables the penalty
	MaxIter int
	Tol     float64
	Solver  string  // SolverNewton (default) or SolverSGD
	Lr      float64 // learning rate for SolverSGD

	W []float64 // weights
	b float64   // bias
}

// LogisticOption configures a LogisticRegression.
type LogisticOption func(*LogisticRegression)

func WithC(c float64) LogisticOption             { return func(m *LogisticRegression) { m.C = c } }
func WithMaxIter(n int) LogisticOption           { return func(m *LogisticRegression) { m.MaxIter = n } }
func WithTol(tol float64) LogisticOption         { return func(m *LogisticRegression) { m.Tol = tol } }
func WithSolver(s string) LogisticOption         { return func(m *LogisticRegression) { m.Solver = s } }
func WithLearningRate(lr float64) LogisticOption { return func(m *LogisticRegression) { m.Lr = lr } }

// NewLogisticRegression returns a model with C=1, 100 iterations and the Newton solver.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	m := &LogisticRegression{
		C:       1.0,
		MaxIter: 100,
		Tol:     1e-6,
		Solver:  SolverNewton,
		Lr:      0.1,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Bias returns the fitted intercept.
func (m *LogisticRegression) Bias() float64 { return m.b }

func (m *LogisticRegression) lambda() float64 {
	if m.C <= 0 {
		return 0
	}
	return 1 / m.C
}

// Fit estimates weights and bias from scratch.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	p, err := checkXY(X, y)
	if err != nil {
		return err
	}
	m.W = make([]float64, p)
	m.b = 0
	switch m.Solver {
	case SolverNewton, "":
		return m.fitNewton(X, y)
	case SolverSGD:
		return m.fitSGD(X, y)
	default:
		return errors.Wrap(ErrUnknownSolver, m.Solver)
	}
}

// objective is the penalized negative log-likelihood at (b, w).
func (m *LogisticRegression) objective(X [][]float64, y []int, b float64, w []float64) float64 {
	s := 0.0
	for i, row := range X {
		z := linear(b, w, row)
		// log(1+exp(z)) - y*z, written to avoid overflow
		if z > 0 {
			s += z + math.Log1p(math.Exp(-z)) - float64(y[i])*z
		} else {
			s += math.Log1p(math.Exp(z)) - float64(y[i])*z
		}
	}
	pen := 0.0
	for _, v := range w {
		pen += v * v
	}
	return s + 0.5*m.lambda()*pen
}

// fitNewton runs damped Newton-Raphson (IRLS). Parameter 0 is the intercept.
func (m *LogisticRegression) fitNewton(X [][]float64, y []int) error {
	p := len(m.W)
	d := p + 1
	lam := m.lambda()
	beta := make([]float64, d)

	for iter := 0; iter < m.MaxIter; iter++ {
		g := mat.NewVecDense(d, nil)
		h := mat.NewSymDense(d, nil)
		for i, row := range X {
			mu := sigmoid(linear(beta[0], beta[1:], row))
			r := mu - float64(y[i])
			s := mu * (1 - mu)
			for j := 0; j < d; j++ {
				xj := 1.0
				if j > 0 {
					xj = row[j-1]
				}
				g.SetVec(j, g.AtVec(j)+r*xj)
				for k := j; k < d; k++ {
					xk := 1.0
					if k > 0 {
						xk = row[k-1]
					}
					h.SetSym(j, k, h.At(j, k)+s*xj*xk)
				}
			}
		}
		for j := 0; j < d; j++ {
			ridge := 1e-10
			if j > 0 {
				ridge += lam
				g.SetVec(j, g.AtVec(j)+lam*beta[j])
			}
			h.SetSym(j, j, h.At(j, j)+ridge)
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(h); !ok {
			return errors.Wrapf(ErrNotConverged, "singular Hessian at iteration %d", iter)
		}
		var step mat.VecDense
		if err := chol.SolveVecTo(&step, g); err != nil {
			return errors.Wrap(err, "model: newton step")
		}

		// halve the step until the objective stops increasing
		before := m.objective(X, y, beta[0], beta[1:])
		next := make([]float64, d)
		t := 1.0
		for half := 0; half < 30; half++ {
			for j := range next {
				next[j] = beta[j] - t*step.AtVec(j)
			}
			if m.objective(X, y, next[0], next[1:]) <= before {
				break
			}
			t /= 2
		}
		maxStep := 0.0
		for j := range next {
			maxStep = math.Max(maxStep, math.Abs(next[j]-beta[j]))
		}
		copy(beta, next)
		if maxStep < m.Tol {
			break
		}
	}
	m.b = beta[0]
	copy(m.W, beta[1:])
	return nil
}

// fitSGD runs full-batch gradient descent through optim.SGD.
func (m *LogisticRegression) fitSGD(X [][]float64, y []int) error {
	opt := optim.NewMomentumSGD(m.Lr, 0.9)
	n := float64(len(X))
	lam := m.lambda()
	params := make([]float64, len(m.W)+1)
	grads := make([]float64, len(params))

	for ep := 0; ep < m.MaxIter; ep++ {
		for j := range grads {
			grads[j] = 0
		}
		for i, row := range X {
			r := sigmoid(linear(params[0], params[1:], row)) - float64(y[i])
			grads[0] += r / n
			for j, v := range row {
				grads[j+1] += r * v / n
			}
		}
		norm := 0.0
		for j := 1; j < len(params); j++ {
			grads[j] += lam * params[j] / n
		}
		for _, v := range grads {
			norm = math.Max(norm, math.Abs(v))
		}
		if norm < m.Tol {
			break
		}
		opt.Step(params, grads)
	}
	m.b = params[0]
	copy(m.W, params[1:])
	return nil
}

// PredictProba returns [1-p, p] per row, p being the fitted probability of class 1.
func (m *LogisticRegression) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		p := sigmoid(linear(m.b, m.W, row))
		out[i] = []float64{1 - p, p}
	}
	return out
}

// Predict returns 1 where the fitted probability of class 1 exceeds 0.5.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	return argmaxProba(m.PredictProba(X))
}

// Score is the accuracy of Predict on (X, y).
func (m *LogisticRegression) Score(X [][]float64, y []int) float64 {
	return Accuracy(y, m.Predict(X))
}

func linear(b float64, w, row []float64) float64 {
	z := b
	for j, v := range row {
		z += w[j] * v
	}
	return z
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
