package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fireboot/internal/config"
	"fireboot/internal/firebase"
	"fireboot/internal/httpjson"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// Uploads hands out V4 signed URLs against the file-storage handle's bucket.
type Uploads struct {
	cfg     config.Config
	handles *firebase.Handles
	iam     *credentials.IamCredentialsClient
	log     *zap.Logger
}

func NewUploads(ctx context.Context, cfg config.Config, handles *firebase.Handles, log *zap.Logger) *Uploads {
	u := &Uploads{cfg: cfg, handles: handles, log: log}
	if cfg.SignedURLServiceAccountEmail == "" {
		return u
	}
	// IAM client is optional; only needed for signed URLs.
	iamClient, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		log.Warn("iam credentials client unavailable, signed urls disabled", zap.Error(err))
		return u
	}
	u.iam = iamClient
	return u
}

// Close releases the IAM client.
func (h *Uploads) Close() error {
	if h == nil || h.iam == nil {
		return nil
	}
	return h.iam.Close()
}

type signedURLReq struct {
	ObjectPath     string `json:"objectPath"`
	ContentType    string `json:"contentType,omitempty"`
	ExpiresSeconds int64  `json:"expiresSeconds,omitempty"` // default 900
}

type signedURLResp struct {
	URL       string `json:"url"`
	Method    string `json:"method"`
	ExpiresAt int64  `json:"expiresAt"`
}

func (h *Uploads) CreateSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	bkt, _, err := h.handles.Client.Bucket()
	if err != nil {
		writeHandleError(w, err)
		return
	}

	var req signedURLReq
	if err := httpjson.Read(r, &req); err != nil || strings.TrimSpace(req.ObjectPath) == "" {
		httpjson.Error(w, http.StatusBadRequest, "objectPath is required")
		return
	}
	url, exp, err := h.signedURL(r.Context(), bkt, req.ObjectPath, req.ContentType, req.ExpiresSeconds)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusOK, signedURLResp{URL: url, Method: http.MethodPut, ExpiresAt: exp.Unix()})
}

// Bucket reports the default bucket's attributes.
func (h *Uploads) Bucket(w http.ResponseWriter, r *http.Request) {
	bkt, name, err := h.handles.Client.Bucket()
	if err != nil {
		writeHandleError(w, err)
		return
	}
	attrs, err := bkt.Attrs(r.Context())
	if err != nil {
		h.log.Warn("reading bucket attributes", zap.String("bucket", name), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "failed to read bucket")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"name":         attrs.Name,
		"location":     attrs.Location,
		"storageClass": attrs.StorageClass,
		"created":      attrs.Created.UTC().Format(time.RFC3339),
	})
}

func (h *Uploads) signedURL(ctx context.Context, bkt *storage.BucketHandle, objectPath, contentType string, expiresSeconds int64) (string, time.Time, error) {
	if h.cfg.SignedURLServiceAccountEmail == "" {
		return "", time.Time{}, errors.New("SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set")
	}
	if h.iam == nil {
		return "", time.Time{}, errors.New("IAM credentials client not available")
	}
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	exp := time.Now().Add(time.Duration(expiresSeconds) * time.Second)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodPut,
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: h.cfg.SignedURLServiceAccountEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			resp, err := h.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", h.cfg.SignedURLServiceAccountEmail),
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}

	url, err := bkt.SignedURL(objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %w", err)
	}
	return url, exp, nil
}

// writeHandleError maps an absent handle to 503 and anything else to 500.
func writeHandleError(w http.ResponseWriter, err error) {
	if errors.Is(err, firebase.ErrServiceNotConfigured) {
		httpjson.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	httpjson.Error(w, http.StatusInternalServerError, err.Error())
}
