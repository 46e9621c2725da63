package booking

import (
	"context"
	"encoding/json"
	"time"

	"fixitnow/models"
	"fixitnow/utils"

	"go.uber.org/zap"
)

// Short-TTL read cache for single-booking fetches. Every successful
// write invalidates the entry, so dashboards polling a booking never see
// a transition stale for longer than the poll itself. A nil client
// disables caching.

const cacheTimeout = 2 * time.Second

func (s *DefaultBookingService) cacheGet(id string) *models.Booking {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	data, err := s.Cache.Get(ctx, utils.BookingCachePrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var b models.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		s.logger().Warn("corrupt booking cache entry", zap.String("bookingId", id), zap.Error(err))
		return nil
	}
	return &b
}

func (s *DefaultBookingService) cacheSet(b *models.Booking) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	if err := s.Cache.Set(ctx, utils.BookingCachePrefix+b.ID, data, utils.BookingCacheTTL).Err(); err != nil {
		s.logger().Warn("failed to cache booking", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) invalidateCache(id string) {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()
	if err := s.Cache.Del(ctx, utils.BookingCachePrefix+id).Err(); err != nil {
		s.logger().Warn("failed to invalidate booking cache", zap.String("bookingId", id), zap.Error(err))
	}
}
