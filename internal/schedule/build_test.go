package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

func TestBuildEmptySelection(t *testing.T) {
	snapshot := Build(nil)

	assert.Equal(t, EmptySnapshot(), snapshot)
	assert.NotNil(t, snapshot.Courses)
	assert.NotNil(t, snapshot.Events)
	assert.NotNil(t, snapshot.Conflicts)
	assert.Zero(t, snapshot.TotalCredits)
	assert.Zero(t, snapshot.CourseCount)
	assert.False(t, snapshot.HasConflicts)
}

func TestBuildEndToEnd(t *testing.T) {
	lecture := testCourse("1", meeting("MoWeFr", "10:10", "11:00"))
	discussion := testCourse("2", meeting("Mo", "10:30", "11:20"))

	snapshot := Build([]models.Course{lecture, discussion})

	assert.Equal(t, 8, snapshot.TotalCredits)
	assert.Equal(t, 2, snapshot.CourseCount)
	assert.True(t, snapshot.HasConflicts)

	require.Len(t, snapshot.Conflicts, 1)
	assert.Equal(t, "Monday", snapshot.Conflicts[0].Day)
	assert.Equal(t, 30, snapshot.Conflicts[0].OverlapMinutes)
	assert.Equal(t, "1", snapshot.Conflicts[0].Course1ID)
	assert.Equal(t, "2", snapshot.Conflicts[0].Course2ID)

	// Monday holds both events in distinct columns; Wednesday and
	// Friday only carry the lecture.
	byDay := map[string][]models.ScheduleEvent{}
	for _, e := range snapshot.Events {
		byDay[e.Day] = append(byDay[e.Day], e)
	}
	require.Len(t, byDay["Monday"], 2)
	assert.NotEqual(t, byDay["Monday"][0].Column, byDay["Monday"][1].Column)
	for _, e := range byDay["Monday"] {
		assert.Equal(t, 2, e.TotalColumns)
	}
	require.Len(t, byDay["Wednesday"], 1)
	assert.Equal(t, 1, byDay["Wednesday"][0].TotalColumns)
	require.Len(t, byDay["Friday"], 1)
	assert.Equal(t, 1, byDay["Friday"][0].TotalColumns)
}

func TestBuildEventOrderFollowsDayOrder(t *testing.T) {
	a := testCourse("a", meeting("Fr", "9:00", "10:00"))
	b := testCourse("b", meeting("Mo", "9:00", "10:00"))
	c := testCourse("c", meeting("We", "9:00", "10:00"))

	snapshot := Build([]models.Course{a, b, c})
	require.Len(t, snapshot.Events, 3)
	assert.Equal(t, "Monday", snapshot.Events[0].Day)
	assert.Equal(t, "Wednesday", snapshot.Events[1].Day)
	assert.Equal(t, "Friday", snapshot.Events[2].Day)
}

func TestBuildColorsAreDeterministic(t *testing.T) {
	courses := make([]models.Course, 12)
	for i := range courses {
		courses[i] = testCourse(string(rune('a'+i)), meeting("Mo", "8:00", "8:30"))
	}

	first := Build(courses)
	second := Build(courses)
	require.Equal(t, first, second)

	// The palette cycles after ten courses.
	assert.Equal(t, ColorFor(0), ColorFor(10))
	assert.Equal(t, ColorFor(1), ColorFor(11))
	assert.NotEqual(t, ColorFor(0), ColorFor(1))
	assert.Len(t, Palette, 10)
}

func TestBuildIdempotentOverOwnCourseList(t *testing.T) {
	a := testCourse("a", meeting("MoWe", "10:00", "11:00"))
	b := testCourse("b", meeting("TuTh", "9:30", "10:45"))
	first := Build([]models.Course{a, b})

	// Re-derive bare courses from the snapshot's own summary list;
	// aggregate totals must survive the round trip.
	rederived := make([]models.Course, 0, len(first.Courses))
	for _, pc := range first.Courses {
		rederived = append(rederived, models.Course{
			ID:         pc.ID,
			Code:       pc.Code,
			Title:      pc.Title,
			Section:    pc.Section,
			Credits:    pc.Credits,
			Instructor: pc.Instructor,
			Term:       pc.Term,
		})
	}
	second := Build(rederived)

	assert.Equal(t, first.Courses, second.Courses)
	assert.Equal(t, first.TotalCredits, second.TotalCredits)
	assert.Equal(t, first.CourseCount, second.CourseCount)
}

func TestBuildSkipsMalformedMeetingsWithoutFailing(t *testing.T) {
	broken := testCourse("broken",
		models.Meeting{Days: "TBA"},
		models.Meeting{Days: "Mo", StartTime: "", EndTime: ""},
	)
	good := testCourse("good", meeting("Tu", "1:00 PM", "2:00 PM"))

	snapshot := Build([]models.Course{broken, good})
	assert.Equal(t, 2, snapshot.CourseCount)
	require.Len(t, snapshot.Events, 1)
	assert.Equal(t, "good", snapshot.Events[0].CourseID)
	assert.False(t, snapshot.HasConflicts)
}
