package model

import "time"

// Exercise is one immutable entry in a user's log.
//
// Date holds a calendar day (midnight UTC); the time-of-day part is never
// meaningful. UserID references User.ID and is enforced by a foreign key.
type Exercise struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Description string    `db:"description"`
	Duration    int       `db:"duration"` // minutes
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewExercise is the raw, unvalidated input for appending an entry.
// Every field arrives as text (JSON strings, JSON numbers and form values all
// collapse to strings) and is coerced by the service.
type NewExercise struct {
	Description string
	Duration    string
	Date        string
}

// LogQuery holds the raw read-path filters. Values that do not parse are
// ignored rather than rejected.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// EntrySummary is the response to a successful append.
type EntrySummary struct {
	UserID      string `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntry is one line of a LogView.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogView is the filtered, limited projection of a user's log.
type LogView struct {
	UserID   string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}
