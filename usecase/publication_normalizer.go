package usecase

import (
	"fmt"
	"time"

	"content-planner/domain/model"
	"content-planner/infrastructure/logger"
)

// Layouts accepted for publishAt. Strings without a zone are read in the
// normalizer's location.
var publishAtLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalizer converts backend publications into display posts in a fixed location.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer uses loc for local dates and clock times; nil means the host's local zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// ParsePublishAt reads an ISO-8601 instant and returns it in the normalizer's location.
func (n *Normalizer) ParsePublishAt(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(n.loc), nil
	}
	for _, layout := range publishAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, n.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable publishAt %q", raw)
}

// Normalize maps one raw publication. Unknown platform or status values fall
// back to instagram and scheduled; the miss is logged and never surfaced.
func (n *Normalizer) Normalize(pub model.RawPublication) model.ContentPost {
	platform, ok := model.ParseBackendPlatform(pub.Platform)
	if !ok {
		logger.GetLogger().WithField("publication_id", pub.ID).WithField("platform", pub.Platform).Warn("unrecognized platform; defaulting")
	}
	status, ok := model.ParseBackendStatus(pub.Status)
	if !ok {
		logger.GetLogger().WithField("publication_id", pub.ID).WithField("status", pub.Status).Warn("unrecognized status; defaulting")
	}

	post := model.ContentPost{
		ID:       pub.ID,
		Title:    pub.Content.Title,
		Platform: platform,
		Status:   status,
		Link:     pub.Link,
	}
	if at, err := n.ParsePublishAt(pub.PublishAt); err == nil {
		post.Time = FormatClock(at)
	} else {
		logger.GetLogger().WithField("publication_id", pub.ID).WithField("error", err).Warn("publication has no usable publishAt")
	}
	return post
}

// FormatClock renders h:mm AM/PM with no leading zero on the hour, e.g. "2:05 PM".
// Go's reference layout is locale independent.
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
