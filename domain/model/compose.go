package model

import "time"

// ComposeState is the single active state of a compose session.
type ComposeState string

const (
	ComposeIdle       ComposeState = "idle"
	ComposeComposing  ComposeState = "composing"
	ComposeSubmitting ComposeState = "submitting"
	ComposeSucceeded  ComposeState = "succeeded"
	ComposeFailed     ComposeState = "failed"
)

// DefaultComposeTime is the time-of-day a fresh form starts with.
const DefaultComposeTime = "09:00"

type ComposeForm struct {
	Title    string        `json:"title"`
	Platform Platform      `json:"platform"`
	Format   ContentFormat `json:"format"`
	Time     string        `json:"time"`
	ImageURL string        `json:"imageUrl"`
	Caption  string        `json:"caption"`
}

// NewComposeForm returns the defaults a session opens with.
func NewComposeForm() ComposeForm {
	return ComposeForm{
		Platform: PlatformInstagram,
		Format:   FormatFeed,
		Time:     DefaultComposeTime,
	}
}

// ComposeFormPatch carries the fields an edit touches; nil means unchanged.
type ComposeFormPatch struct {
	Title    *string `json:"title"`
	Platform *string `json:"platform"`
	Format   *string `json:"format"`
	Time     *string `json:"time"`
	ImageURL *string `json:"imageUrl"`
	Caption  *string `json:"caption"`
}

// ComposeSnapshot is a read-only copy of a session handed to callers.
type ComposeSnapshot struct {
	ID           string       `json:"id"`
	UserID       string       `json:"-"`
	State        ComposeState `json:"state"`
	Date         CalendarDate `json:"date"`
	Form         ComposeForm  `json:"form"`
	Error        string       `json:"error,omitempty"`
	Fields       []string     `json:"fields,omitempty"`
	IsSubmitting bool         `json:"isSubmitting"`
	Closed       bool         `json:"closed"`
	PublishAt    string       `json:"publishAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ComposeAudit is one submission outcome, appended after every attempt.
type ComposeAudit struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Mode         string    `json:"mode"` // schedule | publish_now
	Platform     string    `json:"platform"`
	PublishAt    *string   `json:"publish_at,omitempty"`
	Status       string    `json:"status"` // success | failed
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicationScheduled is emitted to the event broker after a successful schedule.
type PublicationScheduled struct {
	Type          string `json:"type"`
	UserID        string `json:"user_id"`
	PublicationID string `json:"publication_id,omitempty"`
	Platform      string `json:"platform"`
	Format        string `json:"format,omitempty"`
	PublishAt     string `json:"publish_at,omitempty"`
	Immediate     bool   `json:"immediate"`
}
