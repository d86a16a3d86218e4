package firebase

import (
	"context"
	"strings"

	"fireboot/internal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// AdminHandles are derived from the service-account app. Any field may be nil.
type AdminHandles struct {
	App       App
	Firestore *firestore.Client
	Auth      *auth.Client
}

// InitializeAdminSide creates or reuses the admin app from the service-account
// credential in cfg.
//
// A missing or malformed credential is returned as a *ConfigError under
// config.PolicyFail, before the SDK is called. Under config.PolicyDegrade it
// is logged and the returned handles are empty. SDK failures are always logged
// and never returned.
func (b *Bootstrapper) InitializeAdminSide(ctx context.Context, cfg config.AdminConfig) (*AdminHandles, error) {
	b.begin(adminHandleNames...)

	if cfg.ExposedCredentialEnv != "" {
		b.log.Warn("service account credential found under a client-exposed variable, ignoring it",
			zap.String("variable", cfg.ExposedCredentialEnv),
			zap.String("expected", cfg.CredentialEnv))
	}

	cred, cerr := loadCredential(cfg)
	if cerr != nil {
		if cfg.Policy == config.PolicyDegrade {
			b.log.Warn("firebase admin credential unusable, admin handles disabled", zap.Error(cerr))
			b.setState(StateAbsent, adminHandleNames...)
			return &AdminHandles{}, nil
		}
		b.setState(StateFailed, adminHandleNames...)
		return nil, cerr
	}

	entry, reused, err := b.apps.getOrCreate(ctx, adminAppName, func(ctx context.Context) (App, error) {
		return b.sdk.NewApp(ctx, AppOptions{
			Config:          &firebase.Config{ProjectID: cred.projectID},
			CredentialsJSON: cred.data,
		})
	})
	if err != nil {
		b.log.Error("firebase admin initialization failed", zap.Error(err))
		b.setState(StateAbsent, adminHandleNames...)
		return &AdminHandles{}, nil
	}
	b.setState(StateReady, HandleAdminApp)

	h := &AdminHandles{App: entry.app}
	h.Firestore = derive(ctx, b, HandleAdminFirestore, &entry.firestore, entry.app.Firestore)
	h.Auth = derive(ctx, b, HandleAdminAuth, &entry.auth, entry.app.Auth)

	b.log.Info("firebase admin initialized",
		zap.String("project", cred.projectID),
		zap.Bool("reused", reused))
	return h, nil
}

type normalizedCredential struct {
	projectID string
	data      []byte
}

func loadCredential(cfg config.AdminConfig) (normalizedCredential, error) {
	if strings.TrimSpace(cfg.CredentialJSON) == "" {
		return normalizedCredential{}, &ConfigError{Kind: ErrConfigurationMissing, Var: cfg.CredentialEnv}
	}
	cred, err := ParseCredential([]byte(cfg.CredentialJSON))
	if err != nil {
		return normalizedCredential{}, &ConfigError{Kind: ErrConfigurationMalformed, Var: cfg.CredentialEnv, Err: err}
	}
	data, err := cred.JSON()
	if err != nil {
		return normalizedCredential{}, &ConfigError{Kind: ErrConfigurationMalformed, Var: cfg.CredentialEnv, Err: err}
	}
	return normalizedCredential{projectID: cred.ProjectID, data: data}, nil
}

func (h *AdminHandles) FirestoreClient() (*firestore.Client, error) {
	if h == nil || h.Firestore == nil {
		return nil, notConfigured(HandleAdminFirestore)
	}
	return h.Firestore, nil
}

func (h *AdminHandles) AuthClient() (*auth.Client, error) {
	if h == nil || h.Auth == nil {
		return nil, notConfigured(HandleAdminAuth)
	}
	return h.Auth, nil
}
