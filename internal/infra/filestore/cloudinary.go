package filestore

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	rawResourceType = "raw"
	deliveryHost    = "https://res.cloudinary.com"
)

// assetUploader is the part of the Cloudinary upload API the store uses.
type assetUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore keeps documents as raw assets. The reference is used as
// the public id, so local and remote references look the same.
type CloudinaryStore struct {
	uploader    assetUploader
	client      *http.Client
	deliveryURL string
}

func NewCloudinaryStore(cfg config.Config) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		return nil, errs.Wrap(err, "failed to initialize cloudinary")
	}
	return newCloudinaryStore(
		&cld.Upload,
		&http.Client{Timeout: 30 * time.Second},
		deliveryHost+"/"+cfg.Cloudinary.CloudName+"/"+rawResourceType+"/upload",
	), nil
}

func newCloudinaryStore(up assetUploader, client *http.Client, deliveryURL string) *CloudinaryStore {
	return &CloudinaryStore{
		uploader:    up,
		client:      client,
		deliveryURL: strings.TrimRight(deliveryURL, "/"),
	}
}

func (s *CloudinaryStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	ref, err := reference(name)
	if err != nil {
		return "", err
	}

	overwrite := true
	res, err := s.uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     ref,
		ResourceType: rawResourceType,
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", errs.Wrapf(err, "failed to upload document %s", ref)
	}
	if res != nil && res.Error.Message != "" {
		return "", errs.Newf("failed to upload document %s: %s", ref, res.Error.Message)
	}
	return ref, nil
}

func (s *CloudinaryStore) Open(ctx context.Context, ref string) ([]byte, error) {
	resp, err := s.fetch(ctx, http.MethodGet, ref)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errs.Wrapf(shared.ErrDocumentMissing, "document %s", ref)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("unexpected status %d fetching document %s", resp.StatusCode, ref)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to read document %s", ref)
	}
	return data, nil
}

func (s *CloudinaryStore) Exists(ctx context.Context, ref string) (bool, error) {
	resp, err := s.fetch(ctx, http.MethodHead, ref)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errs.Newf("unexpected status %d checking document %s", resp.StatusCode, ref)
	}
}

// Delete treats an already missing asset as deleted.
func (s *CloudinaryStore) Delete(ctx context.Context, ref string) error {
	invalidate := true
	res, err := s.uploader.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref,
		ResourceType: rawResourceType,
		Invalidate:   &invalidate,
	})
	if err != nil {
		return errs.Wrapf(err, "failed to delete document %s", ref)
	}
	if res != nil && res.Error.Message != "" {
		return errs.Newf("failed to delete document %s: %s", ref, res.Error.Message)
	}
	return nil
}

func (s *CloudinaryStore) fetch(ctx context.Context, method, ref string) (*http.Response, error) {
	if ref == "" || strings.Contains(ref, "..") {
		return nil, errs.Wrapf(ErrInvalidReference, "%q", ref)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.deliveryURL+"/"+strings.TrimLeft(ref, "/"), nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build document request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.Wrapf(err, "failed to fetch document %s", ref)
	}
	return resp, nil
}
