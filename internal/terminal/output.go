package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zachkp/termfolio/internal/content"
	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

// ListingSpeed is the per-character delay of long listings.
const ListingSpeed = 5 * time.Millisecond

const successArt = `  ____  _____ _   _ _____
 / ___|| ____| \ | |_   _|
 \___ \|  _| |  \| | | |
  ___) | |___| |\  | | |
 |____/|_____|_| \_| |_|`

const failureArt = `  _____ ____  ____   ___  ____
 | ____|  _ \|  _ \ / _ \|  _ \
 |  _| | |_) | |_) | | | | |_) |
 | |___|  _ <|  _ <| |_| |  _ <
 |_____|_| \_\_| \_\\___/|_| \_\`

const portrait = `    .---.
   /     \
  |  [ ]  |  <-- VISION
  |   ^   |
  |  ___  |
   \_____/
  _/     \_
 [|_______|]`

// art turns a multi-line string into static lines of one role.
func art(s string, role tw.Role) tw.Block {
	rows := strings.Split(s, "\n")
	lines := make([]tw.Line, len(rows))
	for i, r := range rows {
		lines[i] = tw.Line{tw.Seg(r, role)}
	}
	return tw.StaticBlock(lines...)
}

func say(text string) tw.Block { return tw.TextBlock(text, tw.RolePlain) }

var helpRows = [][2]string{
	{"about", "Who am I?"},
	{"projects", "View my work"},
	{"exp", "View work experience"},
	{"contact", "Get in touch"},
	{"theme", "List available themes"},
	{"theme <name>", "Switch to a theme"},
	{"clear", "Clear terminal history"},
	{"maximize", "Maximize terminal window"},
	{"minimize", "Minimize terminal window"},
	{"help", "Show this help message"},
	{"go <num>", "Go to project number"},
}

func helpScript() tw.Script {
	lines := make([]tw.Line, len(helpRows))
	for i, row := range helpRows {
		lines[i] = tw.Line{
			tw.Seg(fmt.Sprintf("%-14s", row[0]), tw.RoleCommand),
			tw.Seg(row[1], tw.RoleOutput),
		}
	}
	return tw.Script{
		tw.TextBlock("Available commands:", tw.RoleWarning),
		tw.RichBlock(tw.DefaultSpeed, lines...),
	}
}

func aboutScript(p content.Profile) tw.Script {
	s := tw.Script{
		art(portrait, tw.RoleAccent),
		tw.HighlightBlock("> System Identity: "+p.Identity, tw.Style{Role: tw.RoleBody}, 30*time.Millisecond, time.Second,
			tw.Highlight{Text: "System Identity:", Style: tw.Style{Role: tw.RoleAccent, Bold: true}}),
		tw.HighlightBlock("ID: "+p.ID, tw.Style{Role: tw.RoleDim}, tw.DefaultSpeed, 500*time.Millisecond),
		tw.StaticBlock(tw.Line{}),
	}
	for _, sum := range p.Summary {
		var hl []tw.Highlight
		if sum.Highlight != "" {
			hl = append(hl, tw.Highlight{Text: sum.Highlight, Style: tw.Style{Role: tw.Role(sum.Role), Bold: tw.Role(sum.Role) == tw.RoleWarning}})
		}
		s = append(s, tw.HighlightBlock(sum.Text, tw.Style{Role: tw.RoleBody}, tw.DefaultSpeed, 300*time.Millisecond, hl...))
	}
	if p.Mission != "" {
		s = append(s,
			tw.StaticBlock(tw.Line{}, tw.Line{tw.Seg("$ cat mission.txt", tw.RoleAccent)}),
			tw.HighlightBlock(p.Mission, tw.Style{Role: tw.RoleSubtle, Italic: true}, 15*time.Millisecond, 300*time.Millisecond),
		)
	}
	if p.Motto != "" {
		s = append(s,
			tw.StaticBlock(tw.Line{}),
			tw.HighlightBlock("_ "+p.Motto, tw.Style{Role: tw.RoleMuted}, 30*time.Millisecond, 500*time.Millisecond,
				tw.Highlight{Text: "_", Style: tw.Style{Role: tw.RoleAccent, Class: "animate-pulse"}}),
		)
	}
	return s
}

func contactCard(links []content.Link) tw.Script {
	lines := make([]tw.Line, len(links))
	for i, l := range links {
		lines[i] = tw.Line{
			tw.Seg(fmt.Sprintf("%-10s", l.Label+":"), tw.RolePlain),
			{Text: l.Value, Style: tw.Style{Role: tw.RoleLink, Underline: true}},
		}
	}
	return tw.Script{
		tw.TextBlock("Contact Me:", tw.RoleWarning),
		tw.RichBlock(tw.DefaultSpeed, lines...),
		tw.TextBlock("Starting interactive contact form...", tw.RoleMuted),
	}
}

func themeList(current string) tw.Script {
	all := theme.All()
	lines := make([]tw.Line, len(all))
	for i, t := range all {
		marker, role := "  ", tw.RolePlain
		if t.Name == current {
			marker, role = "→ ", tw.RoleSuccess
		}
		lines[i] = tw.Line{
			tw.Seg(marker+t.DisplayName, role),
			tw.Seg(" ("+t.Name+")", tw.RoleMuted),
		}
	}
	return tw.Script{
		tw.TextBlock("Available themes:", tw.RoleWarning),
		tw.StaticBlock(lines...),
		tw.TextBlock("Type 'theme <name>' to switch themes.", tw.RoleSubtle),
	}
}

func themeSwitched(t theme.Theme) tw.Script {
	return tw.Script{
		art(theme.Banner(t.Name), tw.RoleAccent),
		say(fmt.Sprintf("Theme switched to %s.", t.DisplayName)),
	}
}

func themeNotFound(name string) tw.Script {
	return tw.Script{
		tw.TextBlock(fmt.Sprintf("Theme '%s' not found.", name), tw.RoleError),
		say("Type 'theme' to see available themes."),
	}
}

func notFound(cmd string) tw.Script {
	return tw.Script{
		art(failureArt, tw.RoleError),
		tw.RichBlock(tw.DefaultSpeed, tw.Line{
			tw.Plain(fmt.Sprintf("Command not found: %s. Type ", cmd)),
			tw.Seg("help", tw.RoleWarning),
			tw.Plain(" for a list of commands."),
		}),
	}
}

func sendOutcome(sent bool, text string) tw.Script {
	if sent {
		return tw.Script{
			say("Sending message..."),
			art(successArt, tw.RoleSuccess),
			tw.TextBlock(text, tw.RoleSuccess),
		}
	}
	return tw.Script{
		say("Sending message..."),
		art(failureArt, tw.RoleError),
		tw.TextBlock(text, tw.RoleError),
	}
}

func welcomeScript(site Identity) tw.Script {
	return tw.Script{
		tw.LinesBlock(tw.DefaultSpeed,
			fmt.Sprintf("Welcome to %s. v%s", site.Name, site.Version),
			"Type 'help' to see available commands.",
		),
	}
}

func restoreScript() tw.Script {
	return tw.Script{
		tw.StaticBlock(
			tw.Line{tw.Seg("✓ Session restored from previous visit", tw.RoleSuccess)},
			tw.Line{tw.Seg("Type 'help' to see available commands.", tw.RoleSubtle)},
		),
	}
}
