package firebase

import (
	"context"

	"fireboot/internal/config"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// Handles is the bundle built once at startup and passed to whatever needs it.
type Handles struct {
	Client *ClientHandles
	Admin  *AdminHandles
	Policy config.AdminPolicy
}

// Initialize runs both sides. The only error it returns is an admin
// configuration error under config.PolicyFail.
func (b *Bootstrapper) Initialize(ctx context.Context, cfg config.Config) (*Handles, error) {
	client := b.InitializeClientSide(ctx, cfg.Client)
	admin, err := b.InitializeAdminSide(ctx, cfg.Admin)
	if err != nil {
		return nil, err
	}
	return &Handles{Client: client, Admin: admin, Policy: cfg.Admin.Policy}, nil
}

// AuthClient prefers the admin auth client and falls back to the client one.
func (h *Handles) AuthClient() (*auth.Client, error) {
	if h == nil {
		return nil, notConfigured(HandleAuth)
	}
	if c, err := h.Admin.AuthClient(); err == nil {
		return c, nil
	}
	return h.Client.AuthClient()
}

// Close releases the Firestore connections. Call it once at process exit.
func (h *Handles) Close(log *zap.Logger) {
	if h == nil {
		return
	}
	if h.Client != nil && h.Client.Firestore != nil {
		if err := h.Client.Firestore.Close(); err != nil {
			log.Warn("closing firestore", zap.Error(err))
		}
	}
	if h.Admin != nil && h.Admin.Firestore != nil {
		if err := h.Admin.Firestore.Close(); err != nil {
			log.Warn("closing admin firestore", zap.Error(err))
		}
	}
}
