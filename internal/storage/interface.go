package storage

import (
	"iter"

	"github.com/northpower/dailysched/internal/models"
)

// Provider is the schedule store used by the presentation layer.
type Provider interface {
	// Records
	Upsert(models.ScheduleRecord)
	Get(id string) (models.ScheduleRecord, bool)
	All() iter.Seq[models.ScheduleRecord]
	// ReplaceAll merges records into the store by id; ids it does not mention are kept.
	ReplaceAll([]models.ScheduleRecord)

	// Utils
	Len() int
	Reset()
}
