package typewriter

import "time"

// DefaultSpeed is the tick interval used when a caller passes zero.
const DefaultSpeed = 20 * time.Millisecond

// Rich reveals lines of styled segments: one line at a time, segments in
// order, one character per tick.
//
// A segment of n characters needs n ticks plus one more that locks it in and
// moves on. A line without segments completes after a single tick.
type Rich struct {
	lines []Line
	speed time.Duration

	completed []Line
	current   Line
	lineIdx   int
	segIdx    int
	charIdx   int

	notified bool
	// OnComplete is called once, right after the last line is locked in. A
	// Rich with no lines completes on its first frame.
	OnComplete func()
}

// NewRich builds a Rich animation over lines.
func NewRich(lines []Line, speed time.Duration) *Rich {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Rich{lines: lines, speed: speed}
}

func (r *Rich) Delay() time.Duration { return r.speed }

func (r *Rich) Done() bool { return r.lineIdx >= len(r.lines) }

func (r *Rich) Step() {
	if r.Done() {
		r.complete()
		return
	}

	line := r.lines[r.lineIdx]
	if len(line) == 0 {
		r.lockLine(Line{})
		return
	}

	seg := line[r.segIdx]
	runes := []rune(seg.Text)
	next := r.charIdx + 1

	if next > len(runes) {
		if r.segIdx+1 >= len(line) {
			r.lockLine(line)
			return
		}
		r.put(line, r.segIdx, seg)
		r.segIdx++
		r.charIdx = 0
		return
	}

	r.charIdx = next
	r.put(line, r.segIdx, Segment{Text: string(runes[:next]), Style: seg.Style})
}

// put stores seg at idx of the partially typed line, filling any gap with the
// full segments that precede it.
func (r *Rich) put(line Line, idx int, seg Segment) {
	for len(r.current) <= idx {
		r.current = append(r.current, line[len(r.current)])
	}
	r.current[idx] = seg
}

func (r *Rich) lockLine(line Line) {
	r.completed = append(r.completed, line.clone())
	r.lineIdx++
	r.segIdx = 0
	r.charIdx = 0
	r.current = nil
	if r.Done() {
		r.complete()
	}
}

func (r *Rich) complete() {
	if r.notified {
		return
	}
	r.notified = true
	if r.OnComplete != nil {
		r.OnComplete()
	}
}

func (r *Rich) Frame() Frame {
	lines := cloneLines(r.completed)
	typing := !r.Done()
	if typing {
		lines = append(lines, r.current.clone())
	} else {
		r.complete()
	}
	return Frame{Lines: lines, Cursor: typing, Started: true, Done: !typing}
}

func (r *Rich) Finish() {
	r.completed = cloneLines(r.lines)
	r.lineIdx = len(r.lines)
	r.segIdx = 0
	r.charIdx = 0
	r.current = nil
	r.complete()
}
