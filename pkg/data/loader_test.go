package data_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"edakit/pkg/core"
	"edakit/pkg/data"
)

const sample = `age,sex,race,death
61,1,2,0
47,2,1,1
,1,9,0
70,2,NA,1
`

func load(t *testing.T) *data.Table {
	t.Helper()
	tbl, err := data.ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	return tbl
}

func TestReadCSV(t *testing.T) {
	tbl := load(t)
	require.Equal(t, []string{"age", "sex", "race", "death"}, tbl.Names())
	require.Equal(t, 4, tbl.Len())

	race, err := tbl.Strings("race")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "1", "9", "NaN"}, race)
}

func TestFloatsMarksMissingAsNaN(t *testing.T) {
	age, err := load(t).Floats("age")
	require.NoError(t, err)
	require.Equal(t, 61.0, age[0])
	require.True(t, math.IsNaN(age[2]))
}

func TestLabels(t *testing.T) {
	tbl := load(t)
	y, err := tbl.Labels("death")
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 0, 1}, y)

	_, err = tbl.Labels("race")
	require.Error(t, err)
	_, err = tbl.Labels("nope")
	require.Error(t, err)
}

func TestFrame(t *testing.T) {
	f, err := load(t).Frame("sex", "death")
	require.NoError(t, err)
	require.Equal(t, []string{"sex", "death"}, f.Names())
	require.Equal(t, []float64{1, 0}, f.Rows()[0])

	bad, err := data.ReadCSV(strings.NewReader("a\nx\n"))
	require.NoError(t, err)
	_, err = bad.Frame("a")
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	f, err := load(t).Frame("sex", "death")
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, data.WriteCSV(&buf, f))

	back, err := data.ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, []string{"sex", "death"}, back.Names())
	sex, err := back.Floats("sex")
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 1, 2}, sex)

	require.Error(t, data.WriteCSV(&buf, core.Empty(3)))
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "NA", "NaN", "nan", "<nil>"} {
		require.True(t, data.IsMissing(v), v)
	}
	require.False(t, data.IsMissing("0"))
	require.False(t, data.IsMissing("none"))
}
