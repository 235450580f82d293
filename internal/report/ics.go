package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/models"
)

// EventUID is the stable calendar UID for a schedule record.
func EventUID(scheduleID string) string {
	return scheduleID + "@" + constants.AppName
}

// WriteICS writes one all-day event per record.
func WriteICS(w io.Writer, records []models.ScheduleRecord, calName string) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + constants.AppName + "//" + constants.Version + "//EN")
	if calName != "" {
		cal.SetXWRCalName(calName)
	}

	stamp := time.Now().UTC()
	for _, r := range records {
		event := cal.AddEvent(EventUID(r.ScheduleID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(r.ScheduleDate.Time)
		event.SetAllDayEndAt(r.ScheduleDate.AddDays(1).Time)
		event.SetSummary(r.WorkOrderNumber + " – " + r.JobDescription)
		event.SetDescription(eventDescription(r))
		if r.BusinessUnit != "" {
			event.SetLocation(r.BusinessUnit)
		}
		if r.Status == models.StatusCancelled {
			event.SetStatus(ics.ObjectStatusCancelled)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func eventDescription(r models.ScheduleRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project manager: %s\n", r.ProjectManager)
	fmt.Fprintf(&b, "Project status: %s\n", r.ProjectStatus)
	if r.TaskInformation != "" {
		fmt.Fprintf(&b, "Task: %s\n", r.TaskInformation)
	}
	resources := constants.EmptyResourceMarker
	if len(r.Resources) > 0 {
		resources = strings.Join(r.ResourceLabels(), ", ")
	}
	fmt.Fprintf(&b, "Resources: %s", resources)
	if r.HoursPerResource != nil {
		fmt.Fprintf(&b, " (%gh each)", *r.HoursPerResource)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s", r.Notes)
	}
	return b.String()
}
