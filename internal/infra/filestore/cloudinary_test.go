//go:build unit

package filestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssetUploader struct {
	mock.Mock
}

func (m *MockAssetUploader) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	res, _ := args.Get(0).(*uploader.UploadResult)
	return res, args.Error(1)
}

func (m *MockAssetUploader) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*uploader.DestroyResult)
	return res, args.Error(1)
}

func TestCloudinaryStoreSave(t *testing.T) {
	up := new(MockAssetUploader)
	up.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(p uploader.UploadParams) bool {
		return p.PublicID == "tickets/ticket_3.pdf" && p.ResourceType == "raw" && p.Overwrite != nil && *p.Overwrite
	})).Run(func(args mock.Arguments) {
		body, err := io.ReadAll(args.Get(1).(io.Reader))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(body))
	}).Return(&uploader.UploadResult{}, nil)

	s := newCloudinaryStore(up, http.DefaultClient, "http://unused")
	ref, err := s.Save(context.Background(), "ticket_3.pdf", []byte("%PDF-"))

	require.NoError(t, err)
	assert.Equal(t, "tickets/ticket_3.pdf", ref)
	up.AssertExpectations(t)
}

func TestCloudinaryStoreOpenAndExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/raw/upload/tickets/ticket_1.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			if r.Method == http.MethodGet {
				_, _ = w.Write([]byte("%PDF-remote"))
			}
		case "/raw/upload/tickets/ticket_9.pdf":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := newCloudinaryStore(new(MockAssetUploader), srv.Client(), srv.URL+"/raw/upload/")
	ctx := context.Background()

	data, err := s.Open(ctx, "tickets/ticket_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-remote", string(data))

	ok, err := s.Exists(ctx, "tickets/ticket_1.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "tickets/ticket_2.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Open(ctx, "tickets/ticket_2.pdf")
	assert.True(t, errs.Is(err, shared.ErrDocumentMissing))

	_, err = s.Open(ctx, "tickets/ticket_9.pdf")
	require.Error(t, err)
	assert.False(t, errs.Is(err, shared.ErrDocumentMissing))
}

func TestCloudinaryStoreDelete(t *testing.T) {
	up := new(MockAssetUploader)
	up.On("Destroy", mock.Anything, mock.MatchedBy(func(p uploader.DestroyParams) bool {
		return p.PublicID == "tickets/ticket_3.pdf" && p.ResourceType == "raw"
	})).Return(&uploader.DestroyResult{Result: "not found"}, nil)

	s := newCloudinaryStore(up, http.DefaultClient, "http://unused")

	assert.NoError(t, s.Delete(context.Background(), "tickets/ticket_3.pdf"))
	up.AssertExpectations(t)
}
