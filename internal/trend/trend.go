// Package trend keeps fixed-capacity rolling histories of sampled
// percentages for the presentation layer's charts.
package trend

import "time"

// DefaultCapacity is the number of points a series retains.
const DefaultCapacity = 60

// Point is one historical sample. Seq is monotonically increasing and
// gives points a stable identity independent of timestamp collisions.
type Point struct {
	Seq       uint64
	Timestamp time.Time
	Value     float64
}

// Series is a FIFO buffer of points. Appending beyond capacity evicts
// the oldest point.
type Series struct {
	capacity int
	nextSeq  uint64
	points   []Point
}

// NewSeries creates a series with the given capacity. A non-positive
// capacity falls back to DefaultCapacity.
func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Series{
		capacity: capacity,
		points:   make([]Point, 0, capacity),
	}
}

// Append records a value at the given time.
func (s *Series) Append(ts time.Time, value float64) {
	s.points = append(s.points, Point{
		Seq:       s.nextSeq,
		Timestamp: ts,
		Value:     value,
	})
	s.nextSeq++

	if len(s.points) > s.capacity {
		s.points = s.points[1:]
	}
}

// Len returns the number of retained points.
func (s *Series) Len() int {
	return len(s.points)
}

// Points returns a copy of the retained points, oldest first.
func (s *Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)

	return out
}

// Recorder holds the two series the scheduler appends to every tick.
type Recorder struct {
	CPU *Series
	RAM *Series
}

// NewRecorder creates a recorder with default-capacity series.
func NewRecorder() *Recorder {
	return &Recorder{
		CPU: NewSeries(DefaultCapacity),
		RAM: NewSeries(DefaultCapacity),
	}
}

// Record appends the current CPU and RAM percentages.
func (r *Recorder) Record(ts time.Time, cpuPercent, ramPercent float64) {
	r.CPU.Append(ts, cpuPercent)
	r.RAM.Append(ts, ramPercent)
}
