package content

import (
	"fmt"
	"regexp"
	"strings"

	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

const (
	separatorHead = "[----------"
	separatorWide = "--------------------------------------"
)

var emphasis = regexp.MustCompile(`\*\*.*?\*\*`)

// ParseEmphasis splits text on **bold** markers. Marked runs take emph, the
// rest base; the markers themselves are dropped.
func ParseEmphasis(text string, base, emph tw.Style) []tw.Segment {
	var segs []tw.Segment
	last := 0
	for _, m := range emphasis.FindAllStringIndex(text, -1) {
		if m[0] > last {
			segs = append(segs, tw.Segment{Text: text[last:m[0]], Style: base})
		}
		if inner := text[m[0]+2 : m[1]-2]; inner != "" {
			segs = append(segs, tw.Segment{Text: inner, Style: emph})
		}
		last = m[1]
	}
	if last < len(text) {
		segs = append(segs, tw.Segment{Text: text[last:], Style: base})
	}
	return segs
}

// separator is a rule; its middle part hides on narrow screens.
func separator() tw.Line {
	return tw.Line{
		tw.Seg(separatorHead, tw.RoleFaint),
		{Text: separatorWide, Style: tw.Style{Role: tw.RoleFaint, Class: "wide-only"}},
		tw.Seg("]", tw.RoleFaint),
	}
}

func stackLine(techs []string) tw.Line {
	line := tw.Line{tw.Seg("  > STACK: ", tw.RoleMuted)}
	for _, t := range techs {
		line = append(line,
			tw.Seg("[", tw.RoleMuted),
			tw.Seg(strings.ToUpper(t), tw.RoleSubtle),
			tw.Seg("] ", tw.RoleMuted),
		)
	}
	return line
}

func linkLine(label, url string) tw.Line {
	return tw.Line{
		tw.Seg(fmt.Sprintf("  > %s: ", label), tw.RoleMuted),
		{Text: url, Style: tw.Style{Role: tw.RoleLink, Underline: true}},
	}
}

// ProjectLines lays out the project directory listing.
func ProjectLines(projects []Project) []tw.Line {
	lines := []tw.Line{
		{tw.Seg("// ACCESSING PROJECT_DIRECTORY.LIST...", tw.RoleMuted)},
		{},
	}

	for i, p := range projects {
		lines = append(lines,
			separator(),
			tw.Line{
				tw.Bold(fmt.Sprintf("[%02d] ", i+1), tw.RoleMuted),
				tw.Bold(strings.ToUpper(p.Name), tw.RoleWarning),
			},
			stackLine(p.Technologies),
		)
		for _, d := range p.Description {
			lines = append(lines, tw.Line{tw.Seg("  - ", tw.RoleDim), tw.Seg(d, tw.RoleBody)})
		}
		if p.HasLink() {
			lines = append(lines, linkLine("LINK", p.URL))
		}
		if p.Repo != "" {
			lines = append(lines, linkLine("REPO", p.Repo))
		}
		lines = append(lines, tw.Line{})
	}

	return append(lines,
		separator(),
		tw.Line{tw.Seg("[END OF DIRECTORY]", tw.RoleMuted)},
		tw.Line{{Text: "Tip: Type 'go <number>' to open a project.", Style: tw.Style{Role: tw.RoleDim, Italic: true}}},
	)
}

// ExperienceTimeline lays out the career log.
func ExperienceTimeline(items []Experience) []tw.Line {
	lines := []tw.Line{
		{tw.Seg("// ACCESSING CAREER_HISTORY.LOG...", tw.RoleMuted)},
		{},
	}

	body := tw.Style{Role: tw.RoleBody}
	accent := tw.Style{Role: tw.RoleAccent}

	for _, item := range items {
		lines = append(lines,
			separator(),
			tw.Line{
				tw.Bold("[", tw.RoleMuted),
				tw.Bold(item.Period, tw.RoleMuted),
				tw.Bold("] ", tw.RoleMuted),
				tw.Bold(item.Role, tw.RoleAccent),
				tw.Seg(" @ ", tw.RoleSubtle),
				{Text: item.Company, Style: tw.Style{Role: tw.RoleBody, Underline: true}},
			},
			stackLine(item.Technologies),
		)
		for _, d := range item.Description {
			line := tw.Line{tw.Seg("  - ", tw.RoleDim)}
			lines = append(lines, append(line, ParseEmphasis(d, body, accent)...))
		}
		lines = append(lines, tw.Line{})
	}

	return append(lines,
		separator(),
		tw.Line{tw.Seg("[END OF LOG]", tw.RoleMuted)},
	)
}

// ExperienceTree lays out experience as a vertical timeline with tree
// branches under each role.
func ExperienceTree(items []Experience) []tw.Line {
	lines := []tw.Line{
		{{Text: "WORK EXPERIENCE", Style: tw.Style{Bold: true, Underline: true}}},
		{},
	}
	border := func(s string) tw.Segment { return tw.Seg(s, tw.RoleBorder) }

	for i, item := range items {
		lines = append(lines,
			tw.Line{tw.Bold("● ", tw.RoleAccent), tw.Bold(item.Period, tw.RoleAccent)},
			tw.Line{border("│")},
			tw.Line{
				border("├── "),
				{Text: item.Role, Style: tw.Style{Bold: true}},
				tw.Seg(" @ ", tw.RoleSubtle),
				{Text: item.Company, Style: tw.Style{Role: tw.RoleTitle, Bold: true, Italic: true}},
			},
		)
		for j, d := range item.Description {
			prefix := "├── "
			if j == len(item.Description)-1 {
				prefix = "└── "
			}
			line := tw.Line{border("│   "), border(prefix)}
			lines = append(lines, append(line, ParseEmphasis(d, tw.Style{}, tw.Style{Role: tw.RoleAccent})...))
		}
		if i < len(items)-1 {
			lines = append(lines, tw.Line{border("│")}, tw.Line{border("│")})
		}
	}
	return lines
}
