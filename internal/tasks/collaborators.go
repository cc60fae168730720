package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceIDs hands out "<prefix>-1", "<prefix>-2", ... for tests and imports.
type SequenceIDs struct {
	Prefix string
	next   int
}

func (s *SequenceIDs) NewID() string {
	s.next++
	return fmt.Sprintf("%s-%d", s.Prefix, s.next)
}
