package seat

import "cinema-ticketing/internal/pkg/errs"

var ErrInvalidSeatNumber = errs.Kinded("seat number must be positive", errs.ErrValidation)

type Seat struct {
	id     int64
	number int
}

func NewSeat(id int64, number int) (*Seat, error) {
	if number <= 0 {
		return nil, ErrInvalidSeatNumber
	}
	return &Seat{id: id, number: number}, nil
}

func (s *Seat) ID() int64   { return s.id }
func (s *Seat) Number() int { return s.number }
