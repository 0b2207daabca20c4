package usecase

import (
	"content-planner/domain/model"
	"content-planner/infrastructure/logger"
)

// BucketByDay groups the publications of a 0-based month by day-of-month,
// keeping backend order within a day. Other months are dropped and days with
// nothing scheduled have no key.
func (n *Normalizer) BucketByDay(pubs []model.RawPublication, year, month int) map[int][]model.ContentPost {
	buckets := make(map[int][]model.ContentPost)
	for _, pub := range pubs {
		at, err := n.ParsePublishAt(pub.PublishAt)
		if err != nil {
			logger.GetLogger().WithField("publication_id", pub.ID).WithField("error", err).Warn("skipping publication without a usable date")
			continue
		}
		if at.Year() != year || int(at.Month())-1 != month {
			continue
		}
		buckets[at.Day()] = append(buckets[at.Day()], n.Normalize(pub))
	}
	return buckets
}
