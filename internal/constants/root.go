package constants

const (
	AppName           = "dailysched"
	AppTitle          = "Northpower Daily Scheduler"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/dailysched"
	DefaultExportFile = "schedules_poc.json"
	EnvPrefix         = "DAILYSCHED"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// IDDateFormat is the date layout embedded in schedule ids (YYYYMMDD)
	IDDateFormat = "20060102"

	// MonthFormat is the layout accepted for month selectors (YYYY-MM)
	MonthFormat = "2006-01"

	// Snapshot constants
	SnapshotDirName    = "snapshots"
	SnapshotFilePrefix = "schedules-"
	SnapshotFileSuffix = ".json"
	CorruptFileSuffix  = ".corrupt.json"
	DefaultSnapshots   = 14

	// Hours range enforced by the validator when the range check is enabled
	MinHoursPerResource = 0.5
	MaxHoursPerResource = 24.0

	// EmptyResourceMarker stands in for the employee name on rows of records with no resources
	EmptyResourceMarker = "—"
)
