package data

import (
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"edakit/pkg/core"
)

// missing markers read as NaN
var naValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// IsMissing reports whether a raw cell is one of the missing markers.
// Strings returns every missing cell as "NaN".
func IsMissing(v string) bool {
	for _, na := range naValues {
		if v == na {
			return true
		}
	}
	return false
}

// Table is a CSV file held as string columns. Conversion to numbers happens
// per column, on demand.
type Table struct {
	df dataframe.DataFrame
}

// ReadCSV reads a CSV with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "data: read csv")
	}
	return &Table{df: df}, nil
}

// OpenCSV reads the CSV file at path.
func OpenCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "data: open csv")
	}
	defer f.Close()
	return ReadCSV(f)
}

// Names returns the header in file order.
func (t *Table) Names() []string { return t.df.Names() }

// Len is the number of data rows.
func (t *Table) Len() int { return t.df.Nrow() }

func (t *Table) col(name string) (series.Series, error) {
	s := t.df.Col(name)
	if s.Err != nil {
		return s, errors.Wrapf(s.Err, "data: column %q", name)
	}
	return s, nil
}

// Strings returns the raw values of a column; missing cells read "NaN".
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

// Floats parses a column as numbers. Missing cells become NaN; any other
// unparsable cell is an error.
func (t *Table) Floats(name string) ([]float64, error) {
	recs, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(recs))
	for i, r := range recs {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, errors.Errorf("data: column %q row %d: %q is not a number", name, i, r)
		}
		out[i] = v
	}
	return out, nil
}

// Labels parses a column of 0/1 targets.
func (t *Table) Labels(name string) ([]int, error) {
	vals, err := t.Floats(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		switch {
		case v == 0:
		case v == 1:
			out[i] = 1
		case math.IsNaN(v):
			return nil, errors.Errorf("data: column %q row %d: missing label", name, i)
		default:
			return nil, errors.Errorf("data: column %q row %d: label %v is not 0 or 1", name, i, v)
		}
	}
	return out, nil
}

// Frame converts the named numeric columns into a Frame.
func (t *Table) Frame(names ...string) (*core.Frame, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	if len(names) == 0 {
		return core.Empty(t.Len()), nil
	}
	return core.NewFrame(names, cols)
}

// WriteCSV writes f with a header row.
func WriteCSV(w io.Writer, f *core.Frame) error {
	if f.Width() == 0 {
		return errors.New("data: frame has no columns")
	}
	cols := make([]series.Series, 0, f.Width())
	for _, name := range f.Names() {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		cols = append(cols, series.New(col, series.Float, name))
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return errors.Wrap(df.Err, "data: build frame")
	}
	return errors.Wrap(df.WriteCSV(w), "data: write csv")
}
