package terminal

import (
	"strings"

	"github.com/Zachkp/termfolio/internal/theme"
)

var baseCommands = []string{
	"help", "about", "projects", "contact", "theme", "exp", "experience",
	"clear", "maximize", "minimize", "restore", "go",
}

// Commands is the completion vocabulary: the command words followed by one
// "theme <name>" per theme.
func Commands() []string {
	out := make([]string, 0, len(baseCommands)+len(theme.Names())+1)
	out = append(out, baseCommands...)
	out = append(out, "exp --tree")
	for _, name := range theme.Names() {
		out = append(out, "theme "+name)
	}
	return out
}

// Complete returns the vocabulary entries starting with prefix, in
// vocabulary order. A blank prefix completes nothing.
func Complete(prefix string) []string {
	p := strings.ToLower(strings.TrimLeft(prefix, " "))
	if strings.TrimSpace(p) == "" {
		return nil
	}
	var out []string
	for _, c := range Commands() {
		if strings.HasPrefix(c, p) {
			out = append(out, c)
		}
	}
	return out
}

// CommonPrefix is the longest prefix shared by all candidates.
func CommonPrefix(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0]
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
