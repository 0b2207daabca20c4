package model

import "encoding/json"

// Platform is the canonical, lower-case platform a post targets.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformX         Platform = "x"
)

// DefaultPlatform is used whenever the backend sends a value we do not know.
const DefaultPlatform = PlatformInstagram

// ParseBackendPlatform maps the backend's upper-case enum onto a Platform.
// The lookup is case-sensitive; ok is false when the default was applied.
func ParseBackendPlatform(raw string) (Platform, bool) {
	switch raw {
	case "INSTAGRAM":
		return PlatformInstagram, true
	case "TIKTOK":
		return PlatformTikTok, true
	case "FACEBOOK":
		return PlatformFacebook, true
	case "LINKEDIN":
		return PlatformLinkedIn, true
	case "X":
		return PlatformX, true
	default:
		return DefaultPlatform, false
	}
}

// ParsePlatform accepts the canonical lower-case names used by the compose form.
func ParsePlatform(raw string) (Platform, bool) {
	switch Platform(raw) {
	case PlatformInstagram, PlatformTikTok, PlatformFacebook, PlatformLinkedIn, PlatformX:
		return Platform(raw), true
	}
	return "", false
}

// BackendValue is the upper-case form the backend expects on writes.
func (p Platform) BackendValue() string {
	switch p {
	case PlatformInstagram:
		return "INSTAGRAM"
	case PlatformTikTok:
		return "TIKTOK"
	case PlatformFacebook:
		return "FACEBOOK"
	case PlatformLinkedIn:
		return "LINKEDIN"
	case PlatformX:
		return "X"
	default:
		return ""
	}
}

// PostStatus is the canonical display status of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

const DefaultStatus = StatusScheduled

// ParseBackendStatus maps backend status strings; PENDING is shown as scheduled.
func ParseBackendStatus(raw string) (PostStatus, bool) {
	switch raw {
	case "PUBLISHED":
		return StatusPublished, true
	case "SCHEDULED":
		return StatusScheduled, true
	case "DRAFT":
		return StatusDraft, true
	case "PENDING":
		return StatusScheduled, true
	default:
		return DefaultStatus, false
	}
}

// ContentFormat is the shape of the media being published.
type ContentFormat string

const (
	FormatFeed  ContentFormat = "feed"
	FormatReel  ContentFormat = "reel"
	FormatStory ContentFormat = "story"
	FormatVideo ContentFormat = "video"
)

func ParseFormat(raw string) (ContentFormat, bool) {
	switch ContentFormat(raw) {
	case FormatFeed, FormatReel, FormatStory, FormatVideo:
		return ContentFormat(raw), true
	}
	return "", false
}

func (f ContentFormat) BackendValue() string {
	switch f {
	case FormatFeed:
		return "FEED"
	case FormatReel:
		return "REEL"
	case FormatStory:
		return "STORY"
	case FormatVideo:
		return "VIDEO"
	default:
		return ""
	}
}

// PublicationContent is the parent content a publication belongs to.
type PublicationContent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// RawPublication is the backend-owned record, before normalization.
type RawPublication struct {
	ID        string             `json:"id"`
	ContentID string             `json:"contentId"`
	Platform  string             `json:"platform"`
	Format    string             `json:"format"`
	PublishAt string             `json:"publishAt"`
	Status    string             `json:"status"`
	Error     *string            `json:"error"`
	Payload   json.RawMessage    `json:"payload,omitempty"`
	CreatedAt string             `json:"createdAt"`
	Link      string             `json:"link,omitempty"`
	Content   PublicationContent `json:"content"`
}

// ContentPost is the normalized, display-facing post.
type ContentPost struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Platform Platform   `json:"platform"`
	Status   PostStatus `json:"status"`
	Time     string     `json:"time"`
	Link     string     `json:"link,omitempty"`
}
