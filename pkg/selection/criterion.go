package selection

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"edakit/pkg/model"
)

// Criterion selects how a fitted candidate is scored. Both criteria are
// maximized.
type Criterion int

const (
	// Deviance scores a fit by -2 times its summed log loss, so the
	// maximum is the lowest deviance.
	Deviance Criterion = iota + 1
	// Rate scores a fit by its in-sample accuracy.
	Rate
)

// ErrCriterion is returned for a zero or unknown Criterion.
var ErrCriterion = errors.New("selection: unknown criterion")

func (c Criterion) String() string {
	switch c {
	case Deviance:
		return "Deviance"
	case Rate:
		return "Rate"
	default:
		return "Criterion(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseCriterion maps "Deviance" or "Rate" (any case) to a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deviance":
		return Deviance, nil
	case "rate":
		return Rate, nil
	}
	return 0, errors.Wrap(ErrCriterion, s)
}

// evaluate scores a classifier that was just fit on (X, y).
func (c Criterion) evaluate(m model.Classifier, X [][]float64, y []int) (float64, error) {
	switch c {
	case Deviance:
		ll, err := model.LogLoss(y, m.PredictProba(X), false)
		if err != nil {
			return 0, err
		}
		return -2 * ll, nil
	case Rate:
		return m.Score(X, y), nil
	}
	return 0, errors.Wrap(ErrCriterion, c.String())
}
