package typewriter

import "time"

// Sequence plays animations back to back. Its frame stacks the frames of
// every child that has started.
type Sequence struct {
	children []Animation
	idx      int
}

func NewSequence(children ...Animation) *Sequence {
	s := &Sequence{children: children}
	s.skipDone()
	return s
}

func (s *Sequence) skipDone() {
	for s.idx < len(s.children) && s.children[s.idx].Done() {
		s.idx++
	}
}

func (s *Sequence) Done() bool { return s.idx >= len(s.children) }

func (s *Sequence) Delay() time.Duration {
	if s.Done() {
		return 0
	}
	return s.children[s.idx].Delay()
}

func (s *Sequence) Step() {
	if s.Done() {
		return
	}
	s.children[s.idx].Step()
	s.skipDone()
}

func (s *Sequence) Frame() Frame {
	f := Frame{Lines: []Line{}, Done: s.Done()}
	last := s.idx
	if last >= len(s.children) {
		last = len(s.children) - 1
	}
	for i := 0; i <= last; i++ {
		cf := s.children[i].Frame()
		if !cf.Started {
			continue
		}
		f.Started = true
		f.Lines = append(f.Lines, cf.Lines...)
		if i == s.idx {
			f.Cursor = cf.Cursor
		}
	}
	return f
}

func (s *Sequence) Finish() {
	for _, c := range s.children {
		c.Finish()
	}
	s.idx = len(s.children)
}

// Static shows its lines at once.
type Static struct {
	lines []Line
}

func NewStatic(lines ...Line) *Static { return &Static{lines: lines} }

func (s *Static) Step()                {}
func (s *Static) Delay() time.Duration { return 0 }
func (s *Static) Done() bool           { return true }
func (s *Static) Finish()              {}

func (s *Static) Frame() Frame {
	return Frame{Lines: cloneLines(s.lines), Started: true, Done: true}
}
