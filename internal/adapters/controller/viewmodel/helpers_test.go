package viewmodel

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

var testLogger = logger.Nop()

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(testNow)
}

func sessionAs(role entity.Role) Session {
	return Session{
		UserID: "u-" + string(role),
		Name:   "Test User",
		Email:  string(role) + "@nhu.na",
		Role:   role,
		TeamID: "t1",
	}
}

// drain collects the messages posted so far.
func drain(s *scope) []string {
	var out []string
	for {
		select {
		case msg := <-s.Messages():
			out = append(out, msg)
		default:
			return out
		}
	}
}
