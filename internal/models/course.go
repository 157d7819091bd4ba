package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Meeting is one recurring weekly time pattern belonging to a section.
// Days is a compact code string ("MoWeFr", "TuTh", "MWF"); the literal
// "TBA" or an empty string marks an unscheduled meeting.
type Meeting struct {
	Days      string `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

// MeetingList stores meetings as a JSONB column.
type MeetingList []Meeting

// Value implements driver.Valuer for JSONB storage.
func (m MeetingList) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (m *MeetingList) Scan(src interface{}) error {
	if src == nil {
		*m = MeetingList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported meetings column type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// StringList stores a list of labels as a JSONB column.
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported list column type %T", src)
	}
	return json.Unmarshal(raw, l)
}

// Course represents one course section in the catalog. HubUnits lists
// the general-education requirements the section satisfies.
type Course struct {
	ID              string      `db:"id" json:"id"`
	Code            string      `db:"code" json:"code"`
	Title           string      `db:"title" json:"title"`
	Description     string      `db:"description" json:"description,omitempty"`
	Section         string      `db:"section" json:"section"`
	SectionType     string      `db:"section_type" json:"section_type"`
	Instructor      string      `db:"instructor" json:"instructor"`
	Term            string      `db:"term" json:"term"`
	Credits         int         `db:"credits" json:"credits"`
	Department      string      `db:"department" json:"department"`
	College         string      `db:"college" json:"college"`
	Status          string      `db:"status" json:"status"`
	HubUnits        StringList  `db:"hub_units" json:"hub_units"`
	EnrollmentCap   int         `db:"enrollment_cap" json:"enrollment_cap"`
	EnrollmentTotal int         `db:"enrollment_total" json:"enrollment_total"`
	Meetings        MeetingList `db:"meetings" json:"meetings"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// CourseFilter describes query params for listing catalog courses.
// Values within one field are ORed, distinct fields are ANDed.
type CourseFilter struct {
	Query     string
	Subjects  []string
	Terms     []string
	HubUnits  []string
	Statuses  []string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// InstructorRating holds aggregate review data for an instructor.
type InstructorRating struct {
	Name           string   `db:"name" json:"name"`
	Rating         *float64 `db:"rating" json:"rating"`
	NumRatings     int      `db:"num_ratings" json:"num_ratings"`
	Difficulty     *float64 `db:"difficulty" json:"difficulty"`
	WouldTakeAgain *float64 `db:"would_take_again" json:"would_take_again"`
	URL            *string  `db:"url" json:"url"`
}
