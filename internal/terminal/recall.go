package terminal

// Recall is the arrow-key command history of the input line.
type Recall struct {
	items []string
	idx   int
}

func NewRecall(items []string) *Recall {
	out := make([]string, len(items))
	copy(out, items)
	return &Recall{items: out, idx: -1}
}

// Push appends a submitted command and leaves browsing mode.
func (r *Recall) Push(cmd string) {
	r.items = append(r.items, cmd)
	r.idx = -1
}

// Up moves to the previous command. ok is false when there is nothing to
// recall and the input should stay as it is.
func (r *Recall) Up() (input string, ok bool) {
	if len(r.items) == 0 {
		return "", false
	}
	if r.idx == -1 {
		r.idx = len(r.items) - 1
	} else {
		r.idx = max(0, r.idx-1)
	}
	return r.items[r.idx], true
}

// Down moves to the next command; past the newest it clears the input.
// ok is false when not browsing.
func (r *Recall) Down() (input string, ok bool) {
	if r.idx == -1 {
		return "", false
	}
	if r.idx == len(r.items)-1 {
		r.idx = -1
		return "", true
	}
	r.idx++
	return r.items[r.idx], true
}

// Items returns a copy of the recalled commands, oldest first.
func (r *Recall) Items() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Recall) Len() int { return len(r.items) }
