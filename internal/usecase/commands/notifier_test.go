//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/commands"
	"cinema-ticketing/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notifierFixture struct {
	uow      *fakeUoW
	store    *memStore
	renderer *MockRenderer
	mailer   *recordingMailer
	notifier commands.TicketNotifier
}

func newNotifierFixture() *notifierFixture {
	f := &notifierFixture{
		uow:      newFakeUoW(),
		store:    newMemStore(),
		renderer: new(MockRenderer),
		mailer:   &recordingMailer{},
	}
	docs := commands.NewDocumentCommands(f.uow, f.renderer, f.store, discardLogger())
	f.notifier = commands.NewTicketNotifier(f.uow, f.store, docs, f.mailer, discardLogger())
	return f
}

func TestTicketNotifierSendsStoredDocument(t *testing.T) {
	f := newNotifierFixture()
	tk := builder.NewTicketBuilder().BuildDomain()
	f.store.files[tk.DocumentPath()] = []byte("%PDF-stored")
	f.uow.reads.On("TicketByID", mock.Anything, int64(42)).Return(tk, nil)

	ok := f.notifier.Notify(context.Background(), 42, "a@b.com")

	require.True(t, ok)
	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "a@b.com", msg.To)
	assert.Equal(t, "Your cinema ticket: Solaris (ticket #42)", msg.Subject)
	assert.Equal(t, "ticket_42.pdf", msg.AttachmentName)
	assert.Equal(t, []byte("%PDF-stored"), msg.Attachment)
	assert.True(t, strings.HasPrefix(msg.Body, "Hello, Ivanov Ivan Ivanovich!"))
	assert.Contains(t, msg.Body, "Date and time: 14.03.2026 19:30")
	assert.Contains(t, msg.Body, "Seat: 5")
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestTicketNotifierRegeneratesMissingDocument(t *testing.T) {
	for _, tc := range []struct {
		name string
		path string
	}{
		{name: "file gone", path: "tickets/ticket_42.pdf"},
		{name: "no reference", path: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newNotifierFixture()
			tk := builder.NewTicketBuilder().With(func(b *builder.TicketBuilder) { b.DocumentPath = tc.path }).BuildDomain()
			f.uow.reads.On("TicketByID", mock.Anything, int64(42)).Return(tk, nil)
			f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF-regenerated"), nil).Once()
			f.uow.tickets.On("AttachDocument", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			ok := f.notifier.Notify(context.Background(), 42, "a@b.com")

			require.True(t, ok)
			assert.Equal(t, []byte("%PDF-regenerated"), f.mailer.sent[0].Attachment)
			assert.Equal(t, 1, f.uow.commits)
			f.renderer.AssertExpectations(t)
		})
	}
}

func TestTicketNotifierFailures(t *testing.T) {
	t.Run("blank recipient", func(t *testing.T) {
		f := newNotifierFixture()
		assert.False(t, f.notifier.Notify(context.Background(), 42, "  "))
		f.uow.reads.AssertNotCalled(t, "TicketByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		f := newNotifierFixture()
		f.uow.reads.On("TicketByID", mock.Anything, int64(42)).
			Return(nil, infra.WrapRepoErr("ticket not found", nil, infra.KindNotFound))
		assert.False(t, f.notifier.Notify(context.Background(), 42, "a@b.com"))
	})

	t.Run("regeneration fails", func(t *testing.T) {
		f := newNotifierFixture()
		tk := builder.NewTicketBuilder().BuildDomain()
		f.uow.reads.On("TicketByID", mock.Anything, int64(42)).Return(tk, nil)
		f.renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("draw failed")).Once()

		assert.False(t, f.notifier.Notify(context.Background(), 42, "a@b.com"))
		assert.Empty(t, f.mailer.sent)
		f.renderer.AssertNumberOfCalls(t, "Render", 1)
	})

	t.Run("transport error", func(t *testing.T) {
		f := newNotifierFixture()
		f.mailer.err = errs.Mark(errors.New("connection refused"), errs.ErrTransport)
		tk := builder.NewTicketBuilder().BuildDomain()
		f.store.files[tk.DocumentPath()] = []byte("%PDF-stored")
		f.uow.reads.On("TicketByID", mock.Anything, int64(42)).Return(tk, nil)

		assert.False(t, f.notifier.Notify(context.Background(), 42, "a@b.com"))
	})
}
