package trend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/trend"
)

func TestSeriesEvictsOldestBeyondCapacity(t *testing.T) {
	series := trend.NewSeries(trend.DefaultCapacity)
	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	for i := 0; i < trend.DefaultCapacity+1; i++ {
		series.Append(base.Add(time.Duration(i)*time.Second), float64(i))
	}

	points := series.Points()
	require.Len(t, points, trend.DefaultCapacity)
	assert.Equal(t, 1.0, points[0].Value, "oldest point evicted")
	assert.Equal(t, float64(trend.DefaultCapacity), points[len(points)-1].Value)
}

func TestSeriesSequenceSurvivesEviction(t *testing.T) {
	series := trend.NewSeries(3)
	now := time.Now()

	for i := 0; i < 5; i++ {
		series.Append(now, float64(i))
	}

	points := series.Points()
	require.Len(t, points, 3)
	assert.Equal(t, uint64(2), points[0].Seq)
	assert.Equal(t, uint64(3), points[1].Seq)
	assert.Equal(t, uint64(4), points[2].Seq)
}

func TestSeriesPointsReturnsCopy(t *testing.T) {
	series := trend.NewSeries(4)
	series.Append(time.Now(), 10.0)

	points := series.Points()
	points[0].Value = 99.0

	assert.Equal(t, 10.0, series.Points()[0].Value)
}

func TestNewSeriesFallsBackOnBadCapacity(t *testing.T) {
	series := trend.NewSeries(0)
	now := time.Now()

	for i := 0; i < trend.DefaultCapacity+5; i++ {
		series.Append(now, 0)
	}

	assert.Equal(t, trend.DefaultCapacity, series.Len())
}

func TestRecorderAppendsBothSeries(t *testing.T) {
	recorder := trend.NewRecorder()
	now := time.Now()

	recorder.Record(now, 42.0, 73.0)

	require.Equal(t, 1, recorder.CPU.Len())
	require.Equal(t, 1, recorder.RAM.Len())
	assert.Equal(t, 42.0, recorder.CPU.Points()[0].Value)
	assert.Equal(t, 73.0, recorder.RAM.Points()[0].Value)
}
