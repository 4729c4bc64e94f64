package session

import (
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/pkg/errs"
)

var ErrInvalidTimeRange = errs.Kinded("session must end after it starts", errs.ErrValidation)

// StartLayout is how session and purchase times are shown to customers.
const StartLayout = "02.01.2006 15:04"

type Session struct {
	id        int64
	filmTitle string
	startsAt  time.Time
	endsAt    time.Time
}

func NewSession(id int64, filmTitle string, startsAt, endsAt time.Time) (*Session, error) {
	if !endsAt.After(startsAt) {
		return nil, ErrInvalidTimeRange
	}
	return &Session{
		id:        id,
		filmTitle: filmTitle,
		startsAt:  startsAt,
		endsAt:    endsAt,
	}, nil
}

func (s *Session) ID() int64           { return s.id }
func (s *Session) FilmTitle() string   { return s.filmTitle }
func (s *Session) StartsAt() time.Time { return s.startsAt }
func (s *Session) EndsAt() time.Time   { return s.endsAt }

func (s *Session) Duration() time.Duration {
	return s.endsAt.Sub(s.startsAt)
}

// FormattedDuration renders the duration as "2 h 5 min", dropping zero parts.
func (s *Session) FormattedDuration() string {
	return FormatDuration(s.Duration())
}

func FormatDuration(d time.Duration) string {
	totalMinutes := int(d / time.Minute)
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d h", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", minutes))
	}
	if len(parts) == 0 {
		return "0 min"
	}
	return strings.Join(parts, " ")
}
