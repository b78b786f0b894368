package dashboard

import "github.com/activecm/idsdash/pkg/classification"

//DefaultLiveBufferSize is how many live results the live table keeps
const DefaultLiveBufferSize = 50

type (
	// LiveBuffer keeps the most recent live results, newest first. Once
	// full, each push drops the oldest entry.
	LiveBuffer struct {
		size  int
		items []classification.Result
	}

	//Trend is the append-only sequence of intrusion flags behind the chart
	Trend struct {
		flags []int
	}

	//Point is one chart sample; Index is the 1-based position in the trend
	Point struct {
		Index int
		Flag  int
	}
)

//NewLiveBuffer creates a buffer holding at most size results
func NewLiveBuffer(size int) *LiveBuffer {
	if size <= 0 {
		size = DefaultLiveBufferSize
	}
	return &LiveBuffer{size: size, items: make([]classification.Result, 0, size)}
}

//Push puts r at the front of the buffer
func (b *LiveBuffer) Push(r classification.Result) {
	if len(b.items) < b.size {
		b.items = append(b.items, classification.Result{})
	}
	copy(b.items[1:], b.items[:len(b.items)-1])
	b.items[0] = r
}

//Len returns the number of buffered results
func (b *LiveBuffer) Len() int {
	return len(b.items)
}

//Cap returns the maximum number of buffered results
func (b *LiveBuffer) Cap() int {
	return b.size
}

//Items returns a copy of the buffer, newest first
func (b *LiveBuffer) Items() []classification.Result {
	out := make([]classification.Result, len(b.items))
	copy(out, b.items)
	return out
}

//Append records the flag of one result
func (t *Trend) Append(r classification.Result) {
	t.flags = append(t.flags, classification.Flag(r))
}

//Len returns the number of recorded flags
func (t *Trend) Len() int {
	return len(t.flags)
}

//Flags returns a copy of the recorded flags in arrival order
func (t *Trend) Flags() []int {
	out := make([]int, len(t.flags))
	copy(out, t.flags)
	return out
}

//Points returns the chart input for the recorded flags
func (t *Trend) Points() []Point {
	out := make([]Point, len(t.flags))
	for i, flag := range t.flags {
		out[i] = Point{Index: i + 1, Flag: flag}
	}
	return out
}
