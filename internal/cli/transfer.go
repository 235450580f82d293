package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/northpower/dailysched/internal/codec"
	"github.com/northpower/dailysched/internal/logger"
)

type ExportCmd struct {
	Out string `short:"o" help:"Destination file." default:"${export_file}" type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	n, err := codec.ExportFile(c.Out, ctx.Store)
	if err != nil {
		return err
	}
	logger.Info("Schedules exported", "path", c.Out, "records", ctx.Store.Len())
	ctx.printf("✓ Exported %d schedule(s) to %s (%s)\n", ctx.Store.Len(), c.Out, humanize.Bytes(uint64(n)))
	return nil
}

// ImportCmd merges an export into the data file. Records whose id already
// exists are overwritten; all others are kept.
type ImportCmd struct {
	File string `arg:"" help:"Schedules JSON file to merge." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	records, err := codec.ImportFile(c.File)
	if err != nil {
		logger.Warn("Import rejected", "path", c.File, "error", err)
		return fmt.Errorf("import failed: %w", err)
	}

	// A repeated key in the document is one schedule; the last entry wins.
	seen := make(map[string]bool, len(records))
	replaced := 0
	for _, r := range records {
		if seen[r.ScheduleID] {
			continue
		}
		seen[r.ScheduleID] = true
		if _, ok := ctx.Store.Get(r.ScheduleID); ok {
			replaced++
		}
	}

	ctx.Store.ReplaceAll(records)
	if err := ctx.Persist(); err != nil {
		return err
	}

	logger.Info("Schedules imported", "path", c.File, "records", len(seen), "replaced", replaced)
	ctx.printf("✓ Imported %d schedule(s) from %s (%d new, %d replaced)\n",
		len(seen), c.File, len(seen)-replaced, replaced)
	return nil
}

