package firebase

import (
	"context"
	"os"
	"strconv"

	"fireboot/internal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// App is the part of *firebase.App the bootstrapper derives handles from.
type App interface {
	Firestore(ctx context.Context) (*firestore.Client, error)
	Auth(ctx context.Context) (*auth.Client, error)
	Storage(ctx context.Context) (*storage.Client, error)
	Messaging(ctx context.Context) (*messaging.Client, error)
}

// AppOptions describe one app instance. At most one credential source is used;
// CredentialsJSON wins over CredentialsFile.
type AppOptions struct {
	Config          *firebase.Config
	CredentialsJSON []byte
	CredentialsFile string
}

// SDK is the Firebase surface the bootstrapper calls into.
type SDK interface {
	NewApp(ctx context.Context, o AppOptions) (App, error)
	AnalyticsSupported(ctx context.Context, cfg config.ClientConfig) (bool, error)
}

type sdk struct{}

// NewSDK returns the firebase-admin-go backed SDK.
func NewSDK() SDK { return sdk{} }

func (sdk) NewApp(ctx context.Context, o AppOptions) (App, error) {
	var opts []option.ClientOption
	// In Cloud Run / GCP, Application Default Credentials are used automatically.
	switch {
	case len(o.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(o.CredentialsJSON))
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, o.Config, opts...)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// AnalyticsSupported reports true when a measurement id is configured and
// FIREBASE_ANALYTICS_DISABLED is not set to a true value.
func (sdk) AnalyticsSupported(_ context.Context, cfg config.ClientConfig) (bool, error) {
	if cfg.MeasurementID == "" {
		return false, nil
	}
	if v := os.Getenv("FIREBASE_ANALYTICS_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return false, err
		}
		return !disabled, nil
	}
	return true, nil
}
