package tasks

import (
	"context"
	"log/slog"

	"github.com/sandeepkv93/taskjar/internal/ads"
)

// AdDecision evaluates the throttle and focus rules at the current time.
func (s *Store) AdDecision() ads.Decision {
	return s.policy.ShouldShowIn(s.ad, s.now(), s.layout, s.focusedID)
}

// ShowAd consumes an ad slot when the policy allows one and returns the
// creative to display.
func (s *Store) ShowAd(ctx context.Context) (ads.Creative, bool, error) {
	d := s.AdDecision()
	if !d.Show {
		return ads.Creative{}, false, nil
	}
	creative := ads.Pick(s.ad.Behavior.Target(), s.ad.DisplayCount)
	s.ad = ads.RecordShown(s.ad, s.now())
	s.logger.Debug("ad shown", slog.String("category", string(creative.Category)), slog.Int("count", s.ad.DisplayCount))
	return creative, true, s.persist(ctx)
}

func (s *Store) AdState() ads.State { return s.ad }

func (s *Store) UnlockPremium(ctx context.Context) error {
	s.ad = ads.UnlockPremium(s.ad, s.now())
	s.logger.Info("premium unlocked", slog.Time("expires", *s.ad.PremiumExpiry))
	return s.persist(ctx)
}

// HasPremium checks the unlock and saves when an expired one was cleared.
func (s *Store) HasPremium(ctx context.Context) (bool, error) {
	ok, next := ads.HasPremium(s.ad, s.now())
	if next.PremiumAccess != s.ad.PremiumAccess {
		s.ad = next
		return ok, s.persist(ctx)
	}
	return ok, nil
}
