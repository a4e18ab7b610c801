package typewriter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepN(a Animation, n int) {
	for i := 0; i < n; i++ {
		a.Step()
	}
}

func TestRichRevealsSegmentsInOrder(t *testing.T) {
	lines := []Line{
		{Seg("ab", RoleAccent), Seg("c", RoleMuted)},
		{},
		{Plain("d")},
	}
	calls := 0
	r := NewRich(lines, 5*time.Millisecond)
	r.OnComplete = func() { calls++ }

	assert.Equal(t, 5*time.Millisecond, r.Delay())
	assert.True(t, r.Frame().Cursor)

	r.Step()
	assert.Equal(t, "a", r.Frame().Text())
	assert.Equal(t, RoleAccent, r.Frame().Lines[0][0].Style.Role)

	r.Step()
	assert.Equal(t, "ab", r.Frame().Text())

	// locking in the first segment takes its own tick
	r.Step()
	assert.Equal(t, "ab", r.Frame().Text())

	r.Step()
	f := r.Frame()
	require.Len(t, f.Lines, 1)
	assert.Len(t, f.Lines[0], 2)
	assert.Equal(t, "abc", f.Text())

	r.Step()
	assert.Equal(t, "abc\n", r.Frame().Text())

	// blank line completes after one tick
	r.Step()
	assert.Equal(t, "abc\n\n", r.Frame().Text())
	assert.False(t, r.Done())

	r.Step()
	assert.Equal(t, "abc\n\nd", r.Frame().Text())
	assert.Equal(t, 0, calls)

	r.Step()
	assert.True(t, r.Done())
	assert.Equal(t, 1, calls)

	f = r.Frame()
	assert.True(t, f.Done)
	assert.False(t, f.Cursor)
	assert.Equal(t, "abc\n\nd", f.Text())

	r.Step()
	assert.Equal(t, 1, calls, "completion is reported once")
}

func TestRichCountsRunes(t *testing.T) {
	r := NewRich([]Line{{Plain("→ ok")}}, 0)
	assert.Equal(t, DefaultSpeed, r.Delay())
	r.Step()
	assert.Equal(t, "→", r.Frame().Text())
	stepN(r, 4)
	assert.True(t, r.Done())
}

func TestRichFinish(t *testing.T) {
	calls := 0
	lines := []Line{{Plain("hello")}, {Plain("world")}}
	r := NewRich(lines, time.Millisecond)
	r.OnComplete = func() { calls++ }
	r.Step()
	r.Finish()

	assert.True(t, r.Done())
	assert.Equal(t, "hello\nworld", r.Frame().Text())
	assert.Equal(t, 1, calls)
}

func TestTextTypesPrefixes(t *testing.T) {
	tw := NewText("hey", 0)
	assert.Equal(t, HookSpeed, tw.Delay())
	assert.True(t, tw.Typing())
	assert.Equal(t, "", tw.Display())

	want := []string{"h", "he", "hey"}
	for _, w := range want {
		tw.Step()
		assert.Equal(t, w, tw.Display())
		assert.True(t, tw.Typing())
	}

	tw.Step()
	assert.False(t, tw.Typing())
	assert.True(t, tw.Frame().Done)
	assert.False(t, tw.Frame().Cursor)
}

func TestTextEmptyStopsOnFirstTick(t *testing.T) {
	tw := NewText("", time.Millisecond)
	tw.Step()
	assert.True(t, tw.Done())
	assert.Equal(t, "", tw.Frame().Text())
}

func TestMultiLinePausesBetweenLines(t *testing.T) {
	m := NewMultiLine([]string{"ab", "c"}, 10*time.Millisecond)

	m.Step()
	assert.Equal(t, "a", m.Frame().Text())
	m.Step()
	assert.Equal(t, "ab", m.Frame().Text())
	assert.Equal(t, 10*time.Millisecond, m.Delay())

	m.Step()
	assert.Equal(t, LinePause, m.Delay())
	assert.Equal(t, "ab", m.Frame().Text())

	m.Step()
	assert.Equal(t, "ab\n", m.Frame().Text())
	assert.Equal(t, 10*time.Millisecond, m.Delay())

	m.Step()
	m.Step()
	assert.False(t, m.Done())
	m.Step()
	assert.True(t, m.Done())
	assert.Equal(t, "ab\nc", m.Frame().Text())
}

func TestHighlightedWaitsThenPopsStyle(t *testing.T) {
	hl := Highlight{Text: "4 years", Style: Style{Role: RoleWarning, Bold: true}}
	h := NewHighlighted("over 4 years.", []Highlight{hl}, 20*time.Millisecond, 2*time.Second)

	f := h.Frame()
	assert.False(t, f.Started)
	assert.Empty(t, f.Lines)
	assert.Equal(t, 2*time.Second, h.Delay())

	h.Step()
	assert.Equal(t, 20*time.Millisecond, h.Delay())
	h.Step()
	f = h.Frame()
	assert.True(t, f.Started)
	assert.True(t, f.Cursor)
	assert.Equal(t, "", f.Text())

	// "over 4 year" is visible but the phrase is not complete yet
	stepN(h, 11)
	f = h.Frame()
	assert.Equal(t, "over 4 year", f.Text())
	require.Len(t, f.Lines[0], 1)

	h.Step()
	f = h.Frame()
	require.Len(t, f.Lines[0], 2)
	assert.Equal(t, RoleWarning, f.Lines[0][1].Style.Role)

	h.Step()
	f = h.Frame()
	assert.Equal(t, "over 4 years.", f.Text())
	assert.False(t, f.Cursor)
	assert.False(t, h.Done())

	h.Step()
	assert.True(t, h.Done())
}

func TestSplitHighlights(t *testing.T) {
	base := Style{Role: RoleBody}
	line := SplitHighlights("a MERN b MERN", base, []Highlight{
		{Text: "MERN", Style: Style{Role: RoleLink}},
		{Text: "", Style: Style{Role: RoleError}},
	})
	require.Len(t, line, 4)
	assert.Equal(t, "a ", line[0].Text)
	assert.Equal(t, RoleLink, line[1].Style.Role)
	assert.Equal(t, " b ", line[2].Text)
	assert.Equal(t, RoleLink, line[3].Style.Role)
}

func TestScriptSequencesBlocks(t *testing.T) {
	script := Script{
		StaticBlock(Line{Plain("art")}),
		TextBlock("ok", RoleSuccess),
		RichBlock(time.Millisecond, Line{Plain("x")}),
	}
	assert.Equal(t, "art\nok\nx", Frame{Lines: script.Final()}.Text())

	a := script.Animate()
	f := a.Frame()
	assert.Equal(t, "art\n", f.Text())

	stepN(a, 3)
	// the rich block has started with an empty current line
	assert.Equal(t, "art\nok\n", a.Frame().Text())
	assert.False(t, a.Done())

	stepN(a, 2)
	assert.True(t, a.Done())
	assert.Equal(t, "art\nok\nx", a.Frame().Text())
}

func TestScriptFinish(t *testing.T) {
	script := Script{
		LinesBlock(time.Millisecond, "one", "two"),
		HighlightBlock("ID: 1", Style{}, time.Millisecond, time.Second),
	}
	a := script.Animate()
	a.Finish()
	assert.True(t, a.Done())
	assert.Equal(t, "one\ntwo\nID: 1", a.Frame().Text())
}

func instant(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestPlayerEmitsEveryStep(t *testing.T) {
	p := &Player{After: instant}
	var frames []Frame
	err := p.Play(context.Background(), NewText("abc", time.Millisecond), func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 5)
	assert.Equal(t, "", frames[0].Text())
	assert.Equal(t, "abc", frames[3].Text())
	assert.True(t, frames[4].Done)
}

func TestPlayerThrottleKeepsFinalFrame(t *testing.T) {
	now := time.Unix(0, 0)
	p := &Player{After: instant, Now: func() time.Time { return now }, Throttle: time.Second}
	var frames []Frame
	err := p.Play(context.Background(), NewText("abcdef", time.Millisecond), func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.True(t, frames[1].Done)
	assert.Equal(t, "abcdef", frames[1].Text())
}

func TestPlayerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{After: func(time.Duration) <-chan time.Time { return nil }}
	emitted := 0
	cancel()
	err := p.Play(ctx, NewText("abc", time.Millisecond), func(Frame) error {
		emitted++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, emitted)
}

func TestPlayerReturnsEmitError(t *testing.T) {
	boom := errors.New("client gone")
	p := &Player{After: instant}
	err := p.Play(context.Background(), NewText("abc", time.Millisecond), func(Frame) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPlayerPaceScalesDelays(t *testing.T) {
	var waits []time.Duration
	p := &Player{
		After: func(d time.Duration) <-chan time.Time {
			waits = append(waits, d)
			return instant(d)
		},
		Pace: PaceFor(40 * time.Millisecond),
	}
	err := p.Play(context.Background(), NewText("ab", 10*time.Millisecond), func(Frame) error { return nil })
	require.NoError(t, err)
	require.NotEmpty(t, waits)
	assert.Equal(t, 20*time.Millisecond, waits[0])

	assert.Equal(t, 1.0, PaceFor(0))
	assert.Equal(t, 1.0, PaceFor(DefaultSpeed))
}

func TestPlayerCompletesEmptyRich(t *testing.T) {
	p := &Player{After: instant}
	for _, lines := range [][]Line{nil, {}, {{Seg("hi", RoleBody)}}} {
		r := NewRich(lines, time.Millisecond)
		calls := 0
		r.OnComplete = func() { calls++ }
		var last Frame
		err := p.Play(context.Background(), r, func(f Frame) error {
			last = f
			return nil
		})
		require.NoError(t, err)
		assert.True(t, last.Done)
		assert.Equal(t, 1, calls, "lines: %v", lines)
	}
}
