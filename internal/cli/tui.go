package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/session"
	"github.com/northpower/dailysched/internal/tui"
)

type TuiCmd struct {
	Export string `help:"File written by the export key. Defaults to the data file." type:"path"`
}

func (c *TuiCmd) Run(ctx *Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive view needs a terminal; use the table, calendar or day commands instead")
	}

	if ctx.Snapshots != nil {
		if path, err := ctx.Snapshots.Create(); err != nil {
			logger.Warn("Startup snapshot failed", "error", err)
		} else if path != "" {
			logger.Debug("Startup snapshot created", "path", path)
		}
	}

	exportPath := c.Export
	if exportPath == "" {
		exportPath = ctx.Store.Path()
	}

	sess := session.New(ctx.Store)
	defer sess.Close()
	logger.Info("Session started", "session", sess.ID, "records", ctx.Store.Len())

	p := tea.NewProgram(tui.NewModel(sess, ctx.Validator, ctx.Catalog, exportPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("Session ended", "session", sess.ID)
	return nil
}
