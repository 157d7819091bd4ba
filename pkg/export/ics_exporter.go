package export

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/schedule"
)

const icsTimestampLayout = "20060102T150405"

var rruleWeekdays = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

var weekdayNumbers = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

// ICSExporter renders courses into an iCalendar file with one weekly
// recurring VEVENT per (course, meeting, weekday), recurring from the
// first matching weekday on or after the term start until the term end.
type ICSExporter struct {
	calendarName string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter(calendarName string) *ICSExporter {
	if calendarName == "" {
		calendarName = "Course Schedule"
	}
	return &ICSExporter{calendarName: calendarName}
}

// Render produces the serialized calendar for the given courses within
// [termStart, termEnd]. Meetings without usable days or times are
// skipped, never failing the whole export.
func (e *ICSExporter) Render(courses []models.Course, termStart, termEnd time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Scarlet Planner//scarlet-planner//EN")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(e.calendarName)

	until := time.Date(termEnd.Year(), termEnd.Month(), termEnd.Day(), 23, 59, 59, 0, termEnd.Location())

	for _, course := range courses {
		for _, meeting := range course.Meetings {
			if meeting.Days == "" || strings.EqualFold(meeting.Days, "TBA") {
				continue
			}
			start := schedule.ParseClock(meeting.StartTime)
			end := schedule.ParseClock(meeting.EndTime)
			if start == 0 && end == 0 {
				continue
			}

			for _, day := range schedule.ParseDays(meeting.Days) {
				if err := e.addEvent(cal, course, meeting, day, start, end, termStart, until); err != nil {
					return nil, err
				}
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func (e *ICSExporter) addEvent(cal *ical.Calendar, course models.Course, meeting models.Meeting, day string, startMinutes, endMinutes int, termStart, until time.Time) error {
	code, ok := schedule.DayCode(day)
	if !ok {
		return nil
	}

	first := firstOccurrence(termStart, weekdayNumbers[day])
	dtStart := time.Date(first.Year(), first.Month(), first.Day(), startMinutes/60, startMinutes%60, 0, 0, termStart.Location())
	dtEnd := time.Date(first.Year(), first.Month(), first.Day(), endMinutes/60, endMinutes%60, 0, 0, termStart.Location())

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[code]},
		Until:     until,
	})
	if err != nil {
		return fmt.Errorf("build weekly rule for %s: %w", course.ID, err)
	}

	uid := fmt.Sprintf("%s-%s-%s@scarlet-planner", course.ID, code, uuid.NewString()[:8])
	event := cal.AddEvent(uid)
	event.SetDtStampTime(time.Now().UTC())
	event.SetProperty(ical.ComponentPropertyDtStart, dtStart.Format(icsTimestampLayout))
	event.SetProperty(ical.ComponentPropertyDtEnd, dtEnd.Format(icsTimestampLayout))
	event.SetProperty(ical.ComponentPropertyRrule, rule.String())
	event.SetSummary(fmt.Sprintf("%s: %s", course.Code, course.Title))
	if meeting.Location != "" {
		event.SetLocation(meeting.Location)
	}
	event.SetDescription(fmt.Sprintf("Section: %s\nInstructor: %s\nCredits: %d", course.Section, course.Instructor, course.Credits))

	return nil
}

// firstOccurrence returns the first date with the given weekday on or
// after start.
func firstOccurrence(start time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}
