package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another booking already holds the doctor or
// the room for an overlapping window.
var ErrSlotHeld = errors.New("slot is currently held by another booking")

// acquireHoldScript sets both hold keys atomically. Redis Go client
// automatically uses EVALSHA after the first call instead of sending the
// full script text every time.
//
// Logic:
// 1. If either key exists → return 0 (hold denied)
// 2. Otherwise SET both with TTL and return 1
var acquireHoldScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 or redis.call('EXISTS', KEYS[2]) == 1 then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
	return 1
`)

const (
	// Redis key prefixes for booking holds
	RedisDoctorHoldKeyPrefix = "hold:doctor:"
	RedisRoomHoldKeyPrefix   = "hold:room:"

	// How long a hold survives if the booking never completes
	defaultHoldTTL = 30 * time.Second
)

// SlotHoldService serializes concurrent bookings that target the same
// doctor or room window. The hold bridges the gap between the database
// conflict check and the insert; it is released once the transaction
// commits or rolls back, and expires on its own if the process dies.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         defaultHoldTTL,
	}
}

// AcquireHold places a hold on both the doctor and the room for the given
// start time. Both keys are set in one atomic script run, so two
// concurrent bookings can never interleave between the two SETs.
func (s *SlotHoldService) AcquireHold(ctx context.Context, clinicID, doctorID, roomID int, start time.Time, owner string) error {
	doctorKey := s.doctorKey(clinicID, doctorID, start)
	roomKey := s.roomKey(clinicID, roomID, start)

	result, err := acquireHoldScript.Run(ctx, s.redisClient,
		[]string{doctorKey, roomKey},
		owner, s.ttl.Milliseconds()).Int()
	if err != nil {
		s.log.Warnf("Failed Lua script AcquireHold for doctor %d room %d: %+v", doctorID, roomID, err)
		return fmt.Errorf("acquire hold for doctor %d room %d: %w", doctorID, roomID, err)
	}

	if result == 0 {
		return ErrSlotHeld
	}

	s.log.Debugf("Acquired hold: doctor=%d room=%d start=%s", doctorID, roomID, start.Format(time.RFC3339))
	return nil
}

// ReleaseHold removes both hold keys. Safe to call after a failed acquire;
// missing keys are ignored.
func (s *SlotHoldService) ReleaseHold(ctx context.Context, clinicID, doctorID, roomID int, start time.Time) error {
	doctorKey := s.doctorKey(clinicID, doctorID, start)
	roomKey := s.roomKey(clinicID, roomID, start)

	if err := s.redisClient.Del(ctx, doctorKey, roomKey).Err(); err != nil {
		s.log.Warnf("Failed to release hold for doctor %d room %d: %+v", doctorID, roomID, err)
		return fmt.Errorf("release hold for doctor %d room %d: %w", doctorID, roomID, err)
	}

	s.log.Debugf("Released hold: doctor=%d room=%d", doctorID, roomID)
	return nil
}

func (s *SlotHoldService) doctorKey(clinicID, doctorID int, start time.Time) string {
	return fmt.Sprintf("%s%d:%d:%d", RedisDoctorHoldKeyPrefix, clinicID, doctorID, start.Unix())
}

func (s *SlotHoldService) roomKey(clinicID, roomID int, start time.Time) string {
	return fmt.Sprintf("%s%d:%d:%d", RedisRoomHoldKeyPrefix, clinicID, roomID, start.Unix())
}
