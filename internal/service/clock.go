package service

import (
	"context"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/rs/zerolog"
)

// Clock answers "what day is it in Costa Rica".
type Clock struct {
	repo *repository.ClockRepository
	loc  *time.Location
	now  func() time.Time
}

func NewClock(repo *repository.ClockRepository, timeZone string) *Clock {
	return &Clock{
		repo: repo,
		loc:  workday.Location(timeZone),
		now:  time.Now,
	}
}

// Today asks the database first, so acceptance environments can pin the
// date, and falls back to the local calendar.
func (c *Clock) Today(ctx context.Context) time.Time {
	if c.repo != nil {
		today, err := c.repo.Today(ctx)
		if err == nil {
			return today
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("get_today_cr failed, using local calendar")
	}
	return workday.DateOf(c.now(), c.loc)
}
