//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra/db"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUoW runs the closure once, applies commitErr as if raised by COMMIT,
// and runs rollback hooks whenever the attempt fails.
type fakeUoW struct {
	reads     *MockCommandReads
	customers *MockCustomerRepository
	tickets   *MockTicketRepository
	seats     *MockSeatRepository
	commitErr error
	commits   int
	rollbacks int
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		reads:     new(MockCommandReads),
		customers: new(MockCustomerRepository),
		tickets:   new(MockTicketRepository),
		seats:     new(MockSeatRepository),
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{uow: u}
	err := fn(ctx, tx)
	if err == nil {
		err = u.commitErr
	}
	if err != nil {
		u.rollbacks++
		for i := len(tx.hooks) - 1; i >= 0; i-- {
			tx.hooks[i](context.WithoutCancel(ctx))
		}
		return err
	}
	u.commits++
	return nil
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.reads }

type fakeTx struct {
	uow   *fakeUoW
	hooks []func(ctx context.Context)
}

func (t *fakeTx) Customers() shared.CustomerRepository    { return t.uow.customers }
func (t *fakeTx) Tickets() shared.TicketRepository        { return t.uow.tickets }
func (t *fakeTx) Seats() shared.SeatRepository            { return t.uow.seats }
func (t *fakeTx) Reads() shared.CommandReads              { return t.uow.reads }
func (t *fakeTx) OnRollback(fn func(ctx context.Context)) { t.hooks = append(t.hooks, fn) }
func (t *fakeTx) DB() db.DBTX                             { return nil }

type MockCommandReads struct {
	mock.Mock
}

func (m *MockCommandReads) CustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCommandReads) SessionByID(ctx context.Context, id int64) (*session.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockCommandReads) SeatByNumber(ctx context.Context, number int) (*seat.Seat, error) {
	args := m.Called(ctx, number)
	s, _ := args.Get(0).(*seat.Seat)
	return s, args.Error(1)
}

func (m *MockCommandReads) TicketByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*ticket.Ticket)
	return t, args.Error(1)
}

func (m *MockCommandReads) EmailOwnedByOther(ctx context.Context, email string, customerID int64) (bool, error) {
	args := m.Called(ctx, email, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommandReads) TicketExists(ctx context.Context, sessionID, seatID int64) (bool, error) {
	args := m.Called(ctx, sessionID, seatID)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) UpdateEmail(ctx context.Context, tx db.DBTX, c *customer.Customer) error {
	return m.Called(ctx, tx, c).Error(0)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, tx db.DBTX, t *ticket.Ticket) error {
	return m.Called(ctx, tx, t).Error(0)
}

func (m *MockTicketRepository) AttachDocument(ctx context.Context, tx db.DBTX, t *ticket.Ticket) error {
	return m.Called(ctx, tx, t).Error(0)
}

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) EnsureRange(ctx context.Context, tx db.DBTX, from, to int) (int64, int64, error) {
	args := m.Called(ctx, tx, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, t *ticket.Ticket) ([]byte, error) {
	args := m.Called(ctx, t)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, ticketID int64, recipient string) bool {
	return m.Called(ctx, ticketID, recipient).Bool(0)
}

// memStore is an in-memory DocumentStore.
type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
	openErr error
	deletes []string
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Save(_ context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	ref := ticket.DocumentDir + "/" + name
	s.files[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *memStore) Open(_ context.Context, ref string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.files[ref]
	if !ok {
		return nil, shared.ErrDocumentMissing
	}
	return data, nil
}

func (s *memStore) Exists(_ context.Context, ref string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[ref]
	return ok, nil
}

func (s *memStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, ref)
	delete(s.files, ref)
	return nil
}

type recordingMailer struct {
	sent []shared.MailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg shared.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
