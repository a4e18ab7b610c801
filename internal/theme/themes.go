package theme

var themes = []Theme{
	{
		Name:        "dark",
		DisplayName: "Dark",
		Colors: Colors{
			Background:     "#0f172a",
			Foreground:     "#e2e8f0",
			Border:         "#1e293b",
			TitleBar:       "#1e293b",
			TitleText:      "#94a3b8",
			Prompt:         "#22c55e",
			Command:        "#ffffff",
			Output:         "#06b6d4",
			Accent:         "#22c55e",
			ScrollbarThumb: "#334155",
			ScrollbarTrack: "#0f172a",
		},
	},
	{
		Name:        "light",
		DisplayName: "Light",
		Colors: Colors{
			Background:     "#ffffff",
			Foreground:     "#1e293b",
			Border:         "#e2e8f0",
			TitleBar:       "#f1f5f9",
			TitleText:      "#64748b",
			Prompt:         "#059669",
			Command:        "#0f172a",
			Output:         "#0891b2",
			Accent:         "#059669",
			ScrollbarThumb: "#cbd5e1",
			ScrollbarTrack: "#f8fafc",
		},
	},
	{
		Name:        "blue-matrix",
		DisplayName: "Blue Matrix",
		Colors: Colors{
			Background:     "#000814",
			Foreground:     "#00d9ff",
			Border:         "#001d3d",
			TitleBar:       "#001233",
			TitleText:      "#0096c7",
			Prompt:         "#00d9ff",
			Command:        "#48cae4",
			Output:         "#90e0ef",
			Accent:         "#00d9ff",
			ScrollbarThumb: "#023e8a",
			ScrollbarTrack: "#000814",
		},
	},
	{
		Name:        "espresso",
		DisplayName: "Espresso",
		Colors: Colors{
			Background:     "#2d2006",
			Foreground:     "#f4d9c6",
			Border:         "#43301a",
			TitleBar:       "#3d2817",
			TitleText:      "#d4a574",
			Prompt:         "#f9ae58",
			Command:        "#ffd89b",
			Output:         "#d4a574",
			Accent:         "#f9ae58",
			ScrollbarThumb: "#6b4423",
			ScrollbarTrack: "#2d2006",
		},
	},
	{
		Name:        "green-goblin",
		DisplayName: "Green Goblin",
		Colors: Colors{
			Background:     "#0d1b0d",
			Foreground:     "#00ff41",
			Border:         "#1a331a",
			TitleBar:       "#152615",
			TitleText:      "#00cc33",
			Prompt:         "#00ff41",
			Command:        "#39ff14",
			Output:         "#7fff00",
			Accent:         "#00ff41",
			ScrollbarThumb: "#2d5f2d",
			ScrollbarTrack: "#0d1b0d",
		},
	},
	{
		Name:        "ubuntu",
		DisplayName: "Ubuntu",
		Colors: Colors{
			Background:     "#300a24",
			Foreground:     "#ffffff",
			Border:         "#5e2750",
			TitleBar:       "#2c001e",
			TitleText:      "#dd4814",
			Prompt:         "#dd4814",
			Command:        "#ffffff",
			Output:         "#aea79f",
			Accent:         "#dd4814",
			ScrollbarThumb: "#772953",
			ScrollbarTrack: "#300a24",
		},
	},
	{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: Colors{
			Background:     "#282a36",
			Foreground:     "#f8f8f2",
			Border:         "#44475a",
			TitleBar:       "#21222c",
			TitleText:      "#bd93f9",
			Prompt:         "#50fa7b",
			Command:        "#f1fa8c",
			Output:         "#8be9fd",
			Accent:         "#ff79c6",
			ScrollbarThumb: "#6272a4",
			ScrollbarTrack: "#282a36",
		},
	},
	{
		Name:        "monokai",
		DisplayName: "Monokai",
		Colors: Colors{
			Background:     "#272822",
			Foreground:     "#f8f8f2",
			Border:         "#3e3d32",
			TitleBar:       "#1e1f1c",
			TitleText:      "#75715e",
			Prompt:         "#a6e22e",
			Command:        "#f92672",
			Output:         "#66d9ef",
			Accent:         "#fd971f",
			ScrollbarThumb: "#49483e",
			ScrollbarTrack: "#272822",
		},
	},
	{
		Name:        "nord",
		DisplayName: "Nord",
		Colors: Colors{
			Background:     "#2e3440",
			Foreground:     "#d8dee9",
			Border:         "#3b4252",
			TitleBar:       "#2e3440",
			TitleText:      "#88c0d0",
			Prompt:         "#88c0d0",
			Command:        "#eceff4",
			Output:         "#81a1c1",
			Accent:         "#5e81ac",
			ScrollbarThumb: "#4c566a",
			ScrollbarTrack: "#2e3440",
		},
	},
	{
		Name:        "solarized-dark",
		DisplayName: "Solarized Dark",
		Colors: Colors{
			Background:     "#002b36",
			Foreground:     "#839496",
			Border:         "#073642",
			TitleBar:       "#073642",
			TitleText:      "#586e75",
			Prompt:         "#859900",
			Command:        "#93a1a1",
			Output:         "#2aa198",
			Accent:         "#268bd2",
			ScrollbarThumb: "#586e75",
			ScrollbarTrack: "#002b36",
		},
	},
	{
		Name:        "glass",
		DisplayName: "VisionOS Glass",
		Colors: Colors{
			Background:     "rgba(0, 0, 0, 0.3)",
			Foreground:     "#ffffff",
			Border:         "rgba(255, 255, 255, 0.15)",
			TitleBar:       "transparent",
			TitleText:      "rgba(255, 255, 255, 0.9)",
			Prompt:         "#3b82f6",
			Command:        "#ffffff",
			Output:         "rgba(255, 255, 255, 0.85)",
			Accent:         "#3b82f6",
			ScrollbarThumb: "rgba(255, 255, 255, 0.2)",
			ScrollbarTrack: "transparent",
		},
	},
}
