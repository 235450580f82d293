// Package backup keeps rotating snapshots of the schedules data file so a bad
// import or a mistaken overwrite can be rolled back.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/northpower/dailysched/internal/codec"
	"github.com/northpower/dailysched/internal/constants"
)

const timestampFormat = "20060102-150405"

// SnapshotInfo describes one snapshot file.
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Seq       int
	Size      int64
	Records   int
}

// Manager handles snapshot operations for one data file.
type Manager struct {
	dataPath string
	dir      string
	keep     int
}

// NewManager creates a manager that stores snapshots in a snapshots/ directory
// next to dataPath and retains the newest keep of them. keep <= 0 disables
// snapshots.
func NewManager(dataPath string, keep int) *Manager {
	return &Manager{
		dataPath: dataPath,
		dir:      filepath.Join(filepath.Dir(dataPath), constants.SnapshotDirName),
		keep:     keep,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) Enabled() bool {
	return m.keep > 0
}

// Create snapshots the current data file and rotates old snapshots. It
// returns "" without error when snapshots are disabled or there is no data
// file yet.
func (m *Manager) Create() (string, error) {
	if !m.Enabled() {
		return "", nil
	}
	if _, err := os.Stat(m.dataPath); os.IsNotExist(err) {
		return "", nil
	}
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		return path, fmt.Errorf("snapshot created but rotation failed: %w", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := codec.ImportFile(m.dataPath); err != nil {
		return "", fmt.Errorf("refusing to snapshot an unreadable data file: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	stamp := time.Now().Format(timestampFormat)
	path := filepath.Join(m.dir, constants.SnapshotFilePrefix+stamp+constants.SnapshotFileSuffix)

	// Snapshots taken within the same second get an increasing sequence
	// number so they still sort after the ones before them.
	existing, err := m.List()
	if err != nil {
		return "", err
	}
	seq := -1
	for _, s := range existing {
		if s.Timestamp.Format(timestampFormat) == stamp && s.Seq > seq {
			seq = s.Seq
		}
	}
	if seq >= 0 {
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", constants.SnapshotFilePrefix, stamp, seq+1, constants.SnapshotFileSuffix))
	}

	if err := copyFile(m.dataPath, path); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return path, nil
}

// List returns every snapshot, newest first.
func (m *Manager) List() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	snapshots := []SnapshotInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		snap := SnapshotInfo{Path: path, Timestamp: ts, Seq: seq, Size: info.Size()}
		if records, err := codec.ImportFile(path); err == nil {
			snap.Records = len(records)
		}
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].Timestamp.Equal(snapshots[j].Timestamp) {
			return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
		}
		return snapshots[i].Seq > snapshots[j].Seq
	})
	return snapshots, nil
}

func (m *Manager) rotate() error {
	snapshots, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the data file with a snapshot. The current data file is
// snapshotted first, outside rotation, so the restore itself can be undone.
// A data file that no longer parses is copied aside verbatim as
// schedules-<stamp>.corrupt.json instead; its path is returned so callers can
// report it. Corrupt copies are never listed or rotated.
func (m *Manager) Restore(snapshotPath string) (string, error) {
	if _, err := codec.ImportFile(snapshotPath); err != nil {
		return "", fmt.Errorf("snapshot is not a valid schedules file: %w", err)
	}

	setAside := ""
	if fileExists(m.dataPath) {
		if _, err := codec.ImportFile(m.dataPath); err != nil {
			path, err := m.setAside()
			if err != nil {
				return "", fmt.Errorf("failed to copy unreadable data file aside before restore: %w", err)
			}
			setAside = path
		} else if _, err := m.create(); err != nil {
			return "", fmt.Errorf("failed to snapshot current data before restore: %w", err)
		}
	}

	tmp := m.dataPath + ".restore.tmp"
	if err := copyFile(snapshotPath, tmp); err != nil {
		return setAside, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dataPath); err != nil {
		_ = os.Remove(tmp)
		return setAside, fmt.Errorf("failed to restore snapshot: %w", err)
	}
	return setAside, nil
}

func (m *Manager) setAside() (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	stamp := time.Now().Format(timestampFormat)
	path := filepath.Join(m.dir, constants.SnapshotFilePrefix+stamp+constants.CorruptFileSuffix)
	for n := 1; fileExists(path); n++ {
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", constants.SnapshotFilePrefix, stamp, n, constants.CorruptFileSuffix))
	}
	if err := copyFile(m.dataPath, path); err != nil {
		return "", err
	}
	return path, nil
}

// parseName accepts schedules-YYYYMMDD-HHMMSS.json and
// schedules-YYYYMMDD-HHMMSS-N.json.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.SnapshotFilePrefix) || !strings.HasSuffix(name, constants.SnapshotFileSuffix) {
		return time.Time{}, 0, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.SnapshotFilePrefix), constants.SnapshotFileSuffix)

	seq := 0
	if len(stamp) > len(timestampFormat) {
		n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(timestampFormat):], "-"))
		if err != nil || n <= 0 {
			return time.Time{}, 0, false
		}
		seq = n
		stamp = stamp[:len(timestampFormat)]
	}

	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
