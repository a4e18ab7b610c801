package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zachkp/termfolio/internal/ansi"
	"github.com/Zachkp/termfolio/internal/config"
	"github.com/Zachkp/termfolio/internal/content"
	"github.com/Zachkp/termfolio/internal/logger"
	"github.com/Zachkp/termfolio/internal/terminal"
	"github.com/Zachkp/termfolio/internal/theme"
	tw "github.com/Zachkp/termfolio/internal/typewriter"
)

const (
	clearScreen  = "\x1b[H\x1b[2J"
	defaultWidth = 80
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the terminal in this console",
	Long: `shell plays the portfolio terminal locally with ANSI colours.
History is kept for the lifetime of the process only. Type "exit" or press
Ctrl-D to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		site, err := content.Load(cfg.ContentFile)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		log := logger.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

		disp := terminal.NewDispatcher(site, mailer(cfg, log))
		sh := &shell{
			mgr:    terminal.NewManager(disp, nil, identity(cfg), cfg.DefaultTheme, log),
			player: tw.NewPlayer(0),
			render: ansi.NewRenderer(cmd.OutOrStdout(), theme.Resolve(cfg.DefaultTheme)),
			out:    cmd.OutOrStdout(),
		}
		sh.player.Pace = tw.PaceFor(cfg.TypeSpeed)
		sh.render.Width = termWidth()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return sh.run(ctx, cmd.InOrStdin())
	},
}

// termWidth reads the console width from $COLUMNS.
func termWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultWidth
}

type shell struct {
	mgr    *terminal.Manager
	player *tw.Player
	render *ansi.Renderer
	out    io.Writer
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	s := sh.mgr.Session(ctx, "")
	snap := s.Snapshot()
	for _, e := range snap.Entries {
		if err := sh.play(ctx, e); err != nil {
			return err
		}
	}

	lines := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, sh.render.Prompt(s.Snapshot().Prompt))
		if !lines.Scan() {
			fmt.Fprintln(sh.out)
			return lines.Err()
		}
		input := lines.Text()
		if strings.EqualFold(strings.TrimSpace(input), "exit") {
			return nil
		}

		_, res, err := sh.mgr.Handle(ctx, s.ID, input)
		if err != nil {
			return err
		}
		if res.Cleared {
			fmt.Fprint(sh.out, clearScreen)
		}
		if res.ThemeChanged {
			sh.render.SetTheme(theme.Resolve(s.Snapshot().Theme))
		}
		for _, e := range res.Entries {
			if err := sh.play(ctx, e); err != nil {
				return err
			}
		}
		if res.OpenURL != "" {
			fmt.Fprintln(sh.out, sh.render.Line(tw.Line{tw.Seg(res.OpenURL, tw.RoleLink)}))
		}
	}
}

func (sh *shell) play(ctx context.Context, e *terminal.Entry) error {
	err := sh.player.Play(ctx, e.Output.Animate(), sh.render.Draw)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
