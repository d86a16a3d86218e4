package firebase

import (
	"context"

	"fireboot/internal/config"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"firebase.google.com/go/v4/storage"
	"go.uber.org/zap"
)

// ClientHandles are the handles derived from the default app. Any field may be nil.
type ClientHandles struct {
	App       App
	Analytics *Deferred[*Analytics]
	Firestore *firestore.Client
	Auth      *auth.Client
	Storage   *storage.Client
	Messaging *messaging.Client

	bucket string
}

// InitializeClientSide creates or reuses the default app and derives its
// handles. Incomplete configuration or SDK failures leave handles nil and are
// logged; nothing is returned as an error.
func (b *Bootstrapper) InitializeClientSide(ctx context.Context, cfg config.ClientConfig) *ClientHandles {
	b.begin(clientHandleNames...)

	if missing := cfg.Missing(); len(missing) > 0 {
		b.log.Warn("firebase configuration is incomplete, client handles disabled",
			zap.Strings("missing", missing))
		b.setState(StateAbsent, clientHandleNames...)
		return &ClientHandles{Analytics: resolved[*Analytics](nil)}
	}

	entry, reused, err := b.apps.getOrCreate(ctx, defaultAppName, func(ctx context.Context) (App, error) {
		return b.sdk.NewApp(ctx, AppOptions{
			Config: &firebase.Config{
				ProjectID:     cfg.ProjectID,
				StorageBucket: cfg.StorageBucket,
			},
			CredentialsFile: cfg.CredentialsFile,
		})
	})
	if err != nil {
		b.log.Error("firebase initialization failed", zap.Error(err))
		b.setState(StateAbsent, clientHandleNames...)
		return &ClientHandles{Analytics: resolved[*Analytics](nil)}
	}
	b.setState(StateReady, HandleApp)

	h := &ClientHandles{App: entry.app, bucket: cfg.StorageBucket}
	h.Analytics = b.analytics(ctx, entry, cfg)
	h.Firestore = derive(ctx, b, HandleFirestore, &entry.firestore, entry.app.Firestore)
	h.Auth = derive(ctx, b, HandleAuth, &entry.auth, entry.app.Auth)
	h.Storage = derive(ctx, b, HandleStorage, &entry.storage, entry.app.Storage)
	h.Messaging = derive(ctx, b, HandleMessaging, &entry.messaging, entry.app.Messaging)

	b.log.Info("firebase client initialized",
		zap.String("project", cfg.ProjectID),
		zap.Bool("reused", reused))
	return h
}

// analytics starts the support check once per app. The returned Deferred
// resolves to nil when analytics is unsupported or the check fails.
func (b *Bootstrapper) analytics(ctx context.Context, entry *appEntry, cfg config.ClientConfig) *Deferred[*Analytics] {
	entry.analyticsOnce.Do(func() {
		d := newDeferred[*Analytics]()
		entry.analytics = d
		ctx := context.WithoutCancel(ctx)
		go func() {
			ok, err := b.sdk.AnalyticsSupported(ctx, cfg)
			switch {
			case err != nil:
				b.log.Error("firebase analytics support check failed", zap.Error(err))
				b.setState(StateAbsent, HandleAnalytics)
				d.resolve(nil)
			case !ok:
				b.log.Debug("firebase analytics not supported")
				b.setState(StateAbsent, HandleAnalytics)
				d.resolve(nil)
			default:
				b.setState(StateReady, HandleAnalytics)
				d.resolve(&Analytics{
					ProjectID:     cfg.ProjectID,
					AppID:         cfg.AppID,
					MeasurementID: cfg.MeasurementID,
				})
			}
		}()
	})
	return entry.analytics
}

func (h *ClientHandles) FirestoreClient() (*firestore.Client, error) {
	if h == nil || h.Firestore == nil {
		return nil, notConfigured(HandleFirestore)
	}
	return h.Firestore, nil
}

func (h *ClientHandles) AuthClient() (*auth.Client, error) {
	if h == nil || h.Auth == nil {
		return nil, notConfigured(HandleAuth)
	}
	return h.Auth, nil
}

func (h *ClientHandles) StorageClient() (*storage.Client, error) {
	if h == nil || h.Storage == nil {
		return nil, notConfigured(HandleStorage)
	}
	return h.Storage, nil
}

func (h *ClientHandles) MessagingClient() (*messaging.Client, error) {
	if h == nil || h.Messaging == nil {
		return nil, notConfigured(HandleMessaging)
	}
	return h.Messaging, nil
}

// Bucket returns the configured default bucket.
func (h *ClientHandles) Bucket() (*gcs.BucketHandle, string, error) {
	st, err := h.StorageClient()
	if err != nil {
		return nil, "", err
	}
	bkt, err := st.DefaultBucket()
	if err != nil {
		return nil, "", err
	}
	return bkt, h.bucket, nil
}
