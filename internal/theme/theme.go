// Package theme holds the terminal colour schemes.
package theme

import (
	"fmt"
	"strings"

	"github.com/Zachkp/termfolio/internal/typewriter"
)

// Default is used whenever a stored or requested name is unknown.
const Default = "dark"

// Colors are CSS colour values (hex or rgba).
type Colors struct {
	Background     string `json:"background"`
	Foreground     string `json:"foreground"`
	Border         string `json:"border"`
	TitleBar       string `json:"titleBar"`
	TitleText      string `json:"titleText"`
	Prompt         string `json:"prompt"`
	Command        string `json:"command"`
	Output         string `json:"output"`
	Accent         string `json:"accent"`
	ScrollbarThumb string `json:"scrollbarThumb"`
	ScrollbarTrack string `json:"scrollbarTrack"`
}

type Theme struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Colors      Colors `json:"colors"`
}

// Fixed palette for roles that do not change with the theme.
const (
	gray300 = "#d1d5db"
	gray400 = "#9ca3af"
	gray500 = "#6b7280"
	gray600 = "#4b5563"
	gray800 = "#1f2937"
	red500  = "#ef4444"
	yel500  = "#eab308"
	grn500  = "#22c55e"
	blu400  = "#60a5fa"
)

// Role resolves a segment role to a colour. The plain role has no colour of
// its own and inherits the foreground.
func (c Colors) Role(r typewriter.Role) string {
	switch r {
	case typewriter.RoleAccent:
		return c.Accent
	case typewriter.RoleTitle:
		return c.TitleText
	case typewriter.RolePrompt:
		return c.Prompt
	case typewriter.RoleCommand:
		return c.Command
	case typewriter.RoleOutput:
		return c.Output
	case typewriter.RoleBorder:
		return c.Border
	case typewriter.RoleBody:
		return gray300
	case typewriter.RoleSubtle:
		return gray400
	case typewriter.RoleMuted:
		return gray500
	case typewriter.RoleDim:
		return gray600
	case typewriter.RoleFaint:
		return gray800
	case typewriter.RoleError:
		return red500
	case typewriter.RoleWarning:
		return yel500
	case typewriter.RoleSuccess:
		return grn500
	case typewriter.RoleLink:
		return blu400
	default:
		return c.Foreground
	}
}

// Names lists theme names in display order.
func Names() []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.Name
	}
	return out
}

// All returns every theme in display order.
func All() []Theme {
	return append([]Theme(nil), themes...)
}

// Lookup finds a theme by name.
func Lookup(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve returns the named theme, or the default one if the name is unknown.
func Resolve(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	t, _ := Lookup(Default)
	return t
}

// Banner frames the display name of a theme in a box.
func Banner(name string) string {
	t := Resolve(name)
	label := fmt.Sprintf("  THEME :: %s  ", strings.ToUpper(t.DisplayName))
	width := len([]rune(label))
	edge := "+" + strings.Repeat("-", width) + "+"
	return strings.Join([]string{edge, "|" + label + "|", edge}, "\n")
}
