package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/northpower/dailysched/internal/backup"
	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/storage"
	"github.com/northpower/dailysched/internal/validation"
)

type Context struct {
	Store     *storage.JSONStore
	Catalog   *catalog.Catalog
	Validator *validation.Validator
	Snapshots *backup.Manager
	// Out receives command output; nil means stdout.
	Out io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

// Persist snapshots the previous data file, then writes the store back.
// Snapshot failures are logged and do not block the write.
func (c *Context) Persist() error {
	if c.Snapshots != nil {
		if path, err := c.Snapshots.Create(); err != nil {
			logger.Warn("Automatic snapshot failed", "error", err)
		} else if path != "" {
			logger.Debug("Snapshot created", "path", path)
		}
	}

	n, err := c.Store.Save()
	if err != nil {
		return err
	}
	logger.Info("Schedules saved", "path", c.Store.Path(), "records", c.Store.Len(), "size", humanize.Bytes(uint64(n)))
	return nil
}

func (c *Context) newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out())
	tw.SetStyle(table.StyleLight)
	return tw
}

// ParseDateOrToday parses YYYY-MM-DD, treating "" as today.
func ParseDateOrToday(s string) (models.Date, error) {
	if s == "" {
		return models.Today(), nil
	}
	return models.ParseDate(s)
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return humanize.Ftoa(*h)
}
