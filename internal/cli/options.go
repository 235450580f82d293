package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/northpower/dailysched/internal/catalog"
)

// OptionsCmd prints the option catalog in effect.
type OptionsCmd struct {
	YAML bool `name:"yaml" help:"Print the catalog as a YAML override file."`
}

func (c *OptionsCmd) Run(ctx *Context) error {
	if c.YAML {
		data, err := yaml.Marshal(ctx.Catalog)
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		_, err = ctx.out().Write(data)
		return err
	}

	lists := []struct {
		title  string
		values []string
	}{
		{"Business Units", ctx.Catalog.BusinessUnits},
		{"Project Managers", ctx.Catalog.ProjectManagers},
		{"Project Statuses", ctx.Catalog.ProjectStatuses},
		{"Customer / Work Types", ctx.Catalog.CustomerWorkTypes},
		{"Resources", ctx.Catalog.Resources},
	}
	for _, l := range lists {
		tw := ctx.newTable()
		tw.SetTitle(l.title)
		for i, v := range l.values {
			tw.AppendRow(table.Row{i + 1, v})
		}
		tw.Render()
	}

	var statuses []string
	for _, s := range catalog.ScheduleStatuses {
		statuses = append(statuses, string(s))
	}
	ctx.printf("Schedule statuses: %v\n", statuses)
	return nil
}

type SnapshotListCmd struct{}

func (c *SnapshotListCmd) Run(ctx *Context) error {
	snapshots, err := ctx.Snapshots.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		ctx.printf("No snapshots found.\nSnapshots are stored in: %s\n", ctx.Snapshots.Dir())
		return nil
	}

	tw := ctx.newTable()
	tw.AppendHeader(table.Row{"Taken", "File", "Schedules", "Size"})
	for _, s := range snapshots {
		tw.AppendRow(table.Row{
			s.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(s.Path), s.Records, humanize.Bytes(uint64(s.Size)),
		})
	}
	tw.Render()
	ctx.printf("Snapshot directory: %s\n", ctx.Snapshots.Dir())
	return nil
}

type SnapshotRestoreCmd struct {
	File string `arg:"" help:"Path or file name of the snapshot to restore."`
}

func (c *SnapshotRestoreCmd) Run(ctx *Context) error {
	path := c.File
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(ctx.Snapshots.Dir(), path)
	}
	setAside, err := ctx.Snapshots.Restore(path)
	if err != nil {
		return err
	}
	if setAside != "" {
		ctx.printf("! Data file was unreadable; kept a copy at %s\n", setAside)
	}
	ctx.printf("✓ Restored %s\n", filepath.Base(path))
	return nil
}

type SnapshotCmd struct {
	List    SnapshotListCmd    `cmd:"" help:"List snapshots of the data file." default:"1"`
	Restore SnapshotRestoreCmd `cmd:"" help:"Replace the data file with a snapshot."`
}
