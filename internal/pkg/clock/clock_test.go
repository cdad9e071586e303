package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tavernkeep/character-api/internal/pkg/clock"
)

type FakeClockTestSuite struct {
	suite.Suite
	clock *clock.Fake
}

func TestFakeClockSuite(t *testing.T) {
	suite.Run(t, new(FakeClockTestSuite))
}

func (s *FakeClockTestSuite) SetupTest() {
	s.clock = clock.NewFake()
}

func (s *FakeClockTestSuite) TestNowOnlyMovesOnAdvance() {
	start := s.clock.Now()
	s.Equal(start, s.clock.Now())

	s.clock.Advance(time.Minute)
	s.Equal(start.Add(time.Minute), s.clock.Now())
}

func (s *FakeClockTestSuite) TestAfterFuncFiresAtDeadline() {
	fired := 0
	s.clock.AfterFunc(2*time.Second, func() { fired++ })

	s.clock.Advance(2*time.Second - time.Millisecond)
	s.Equal(0, fired)

	s.clock.Advance(time.Millisecond)
	s.Equal(1, fired)

	// One-shot: never fires again
	s.clock.Advance(time.Hour)
	s.Equal(1, fired)
}

func (s *FakeClockTestSuite) TestTimersFireInDeadlineOrder() {
	var order []string
	s.clock.AfterFunc(3*time.Second, func() { order = append(order, "late") })
	s.clock.AfterFunc(time.Second, func() { order = append(order, "early") })

	s.clock.Advance(5 * time.Second)
	s.Equal([]string{"early", "late"}, order)
}

func (s *FakeClockTestSuite) TestCallbackSeesItsDeadlineAsNow() {
	var at time.Time
	s.clock.AfterFunc(time.Second, func() { at = s.clock.Now() })

	start := s.clock.Now()
	s.clock.Advance(time.Minute)
	s.Equal(start.Add(time.Second), at)
	s.Equal(start.Add(time.Minute), s.clock.Now())
}

func (s *FakeClockTestSuite) TestStopPreventsFiring() {
	fired := false
	timer := s.clock.AfterFunc(time.Second, func() { fired = true })

	s.True(timer.Stop())
	s.clock.Advance(time.Hour)
	s.False(fired)

	// A second stop reports the timer was already gone
	s.False(timer.Stop())
}

func (s *FakeClockTestSuite) TestResetPushesDeadlineOut() {
	fired := 0
	timer := s.clock.AfterFunc(2*time.Second, func() { fired++ })

	s.clock.Advance(time.Second)
	s.True(timer.Reset(2 * time.Second))

	// The original deadline passes without firing
	s.clock.Advance(time.Second)
	s.Equal(0, fired)

	s.clock.Advance(time.Second)
	s.Equal(1, fired)
}

func (s *FakeClockTestSuite) TestResetRearmsAFiredTimer() {
	fired := 0
	timer := s.clock.AfterFunc(time.Second, func() { fired++ })

	s.clock.Advance(time.Second)
	s.Equal(1, fired)

	s.False(timer.Reset(time.Second))
	s.clock.Advance(time.Second)
	s.Equal(2, fired)
}

func (s *FakeClockTestSuite) TestCallbackMayScheduleAnotherTimer() {
	fired := 0
	s.clock.AfterFunc(time.Second, func() {
		s.clock.AfterFunc(time.Second, func() { fired++ })
	})

	// Both the outer and the inner deadline fall inside one Advance
	s.clock.Advance(2 * time.Second)
	s.Equal(1, fired)
}

func (s *FakeClockTestSuite) TestRealClockSatisfiesInterface() {
	var c clock.Clock = clock.New()

	timer := c.AfterFunc(time.Hour, func() {})
	s.True(timer.Stop())
	s.WithinDuration(time.Now(), c.Now(), time.Minute)
}
