package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

func meeting(days, start, end string) models.Meeting {
	return models.Meeting{Days: days, StartTime: start, EndTime: end}
}

func TestDetectFindsOverlapPerSharedDay(t *testing.T) {
	a := testCourse("a", meeting("MoWeFr", "10:10", "11:00"))
	b := testCourse("b", meeting("MoWe", "10:30", "11:20"))

	conflicts := Detect([]models.Course{a, b})
	require.Len(t, conflicts, 2)

	assert.Equal(t, "Monday", conflicts[0].Day)
	assert.Equal(t, "Wednesday", conflicts[1].Day)
	for _, c := range conflicts {
		assert.Equal(t, "a", c.Course1ID)
		assert.Equal(t, "b", c.Course2ID)
		assert.Equal(t, 30, c.OverlapMinutes)
	}
}

func TestDetectBackToBackIsNotAConflict(t *testing.T) {
	a := testCourse("a", meeting("Mo", "9:00", "10:00"))
	b := testCourse("b", meeting("Mo", "10:00", "11:00"))

	assert.Empty(t, Detect([]models.Course{a, b}))
}

func TestDetectDifferentDaysNeverConflict(t *testing.T) {
	a := testCourse("a", meeting("Mo", "9:00", "10:00"))
	b := testCourse("b", meeting("Tu", "9:00", "10:00"))

	assert.Empty(t, Detect([]models.Course{a, b}))
}

func TestDetectSymmetry(t *testing.T) {
	a := testCourse("a", meeting("TuTh", "1:00 PM", "2:15 PM"))
	b := testCourse("b", meeting("Th", "2:00 PM", "3:15 PM"))

	forward := Detect([]models.Course{a, b})
	backward := Detect([]models.Course{b, a})
	require.Len(t, forward, 1)
	require.Len(t, backward, 1)

	assert.Equal(t, forward[0].Day, backward[0].Day)
	assert.Equal(t, forward[0].OverlapMinutes, backward[0].OverlapMinutes)
	assert.Equal(t, forward[0].Course1ID, backward[0].Course2ID)
	assert.Equal(t, forward[0].Course2ID, backward[0].Course1ID)
}

func TestDetectNeverPairsACourseWithItself(t *testing.T) {
	a := testCourse("a", meeting("MoWeFr", "10:00", "11:00"))

	assert.Empty(t, Detect([]models.Course{a}))
}

func TestDetectThreeWayOverlap(t *testing.T) {
	a := testCourse("a", meeting("Mo", "9:00", "11:00"))
	b := testCourse("b", meeting("Mo", "10:00", "12:00"))
	c := testCourse("c", meeting("Mo", "10:30", "11:30"))

	conflicts := Detect([]models.Course{a, b, c})
	require.Len(t, conflicts, 3)
	// Pairs iterate i < j in input order: a-b, a-c, b-c.
	assert.Equal(t, 60, conflicts[0].OverlapMinutes)
	assert.Equal(t, 30, conflicts[1].OverlapMinutes)
	assert.Equal(t, 60, conflicts[2].OverlapMinutes)
}

func TestDetectSkipsUnscheduledMeetings(t *testing.T) {
	a := testCourse("a", meeting("TBA", "", ""))
	b := testCourse("b", meeting("MoWeFr", "10:00", "11:00"))

	assert.Empty(t, Detect([]models.Course{a, b}))
}
