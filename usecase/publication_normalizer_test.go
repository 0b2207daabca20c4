package usecase_test

import (
	"testing"
	"time"

	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour, min int
		want      string
	}{
		{14, 5, "2:05 PM"},
		{0, 0, "12:00 AM"},
		{12, 0, "12:00 PM"},
		{23, 59, "11:59 PM"},
		{9, 30, "9:30 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			at := time.Date(2026, time.January, 22, tt.hour, tt.min, 0, 0, time.UTC)
			assert.Equal(t, tt.want, usecase.FormatClock(at))
		})
	}
}

func TestNormalize(t *testing.T) {
	n := usecase.NewNormalizer(time.UTC)

	tests := []struct {
		name string
		in   model.RawPublication
		want model.ContentPost
	}{
		{
			name: "published instagram",
			in: model.RawPublication{
				ID: "p1", Platform: "INSTAGRAM", Status: "PUBLISHED",
				PublishAt: "2026-01-22T14:05:00Z", Link: "https://instagram.com/p/1",
				Content: model.PublicationContent{Title: "Launch"},
			},
			want: model.ContentPost{ID: "p1", Title: "Launch", Platform: model.PlatformInstagram, Status: model.StatusPublished, Time: "2:05 PM", Link: "https://instagram.com/p/1"},
		},
		{
			name: "pending shows as scheduled",
			in:   model.RawPublication{ID: "p2", Platform: "TIKTOK", Status: "PENDING", PublishAt: "2026-01-22T00:00:00Z"},
			want: model.ContentPost{ID: "p2", Platform: model.PlatformTikTok, Status: model.StatusScheduled, Time: "12:00 AM"},
		},
		{
			name: "unknown platform and status fall back",
			in:   model.RawPublication{ID: "p3", Platform: "MYSPACE", Status: "ARCHIVED", PublishAt: "2026-01-22T12:00:00Z"},
			want: model.ContentPost{ID: "p3", Platform: model.PlatformInstagram, Status: model.StatusScheduled, Time: "12:00 PM"},
		},
		{
			name: "lower-case platform is not recognized",
			in:   model.RawPublication{ID: "p4", Platform: "linkedin", Status: "DRAFT", PublishAt: "2026-01-22T23:59:00Z"},
			want: model.ContentPost{ID: "p4", Platform: model.PlatformInstagram, Status: model.StatusDraft, Time: "11:59 PM"},
		},
		{
			name: "unparseable date leaves time empty",
			in:   model.RawPublication{ID: "p5", Platform: "X", Status: "SCHEDULED", PublishAt: "next tuesday"},
			want: model.ContentPost{ID: "p5", Platform: model.PlatformX, Status: model.StatusScheduled},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestParsePublishAt_Location(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	n := usecase.NewNormalizer(jakarta)

	// 20:30Z is already the next day in UTC+7.
	at, err := n.ParsePublishAt("2026-01-31T20:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.February, at.Month())
	assert.Equal(t, 1, at.Day())
	assert.Equal(t, "3:30 AM", usecase.FormatClock(at))

	local, err := n.ParsePublishAt("2026-01-25T09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 25, local.Day())
	assert.Equal(t, 9, local.Hour())

	frac, err := n.ParsePublishAt("2026-01-25T09:30:00.123+07:00")
	require.NoError(t, err)
	assert.Equal(t, 9, frac.Hour())

	_, err = n.ParsePublishAt("")
	assert.Error(t, err)
}
