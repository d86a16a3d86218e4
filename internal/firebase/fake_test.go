package firebase

import (
	"context"
	"errors"
	"sync"

	"fireboot/internal/config"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"firebase.google.com/go/v4/storage"
)

type fakeApp struct {
	opts AppOptions

	firestoreErr error
	authErr      error
	storageErr   error
	messagingErr error
}

func (a *fakeApp) Firestore(context.Context) (*firestore.Client, error) {
	if a.firestoreErr != nil {
		return nil, a.firestoreErr
	}
	return &firestore.Client{}, nil
}

func (a *fakeApp) Auth(context.Context) (*auth.Client, error) {
	if a.authErr != nil {
		return nil, a.authErr
	}
	return &auth.Client{}, nil
}

func (a *fakeApp) Storage(context.Context) (*storage.Client, error) {
	if a.storageErr != nil {
		return nil, a.storageErr
	}
	return &storage.Client{}, nil
}

func (a *fakeApp) Messaging(context.Context) (*messaging.Client, error) {
	if a.messagingErr != nil {
		return nil, a.messagingErr
	}
	return &messaging.Client{}, nil
}

type fakeSDK struct {
	mu sync.Mutex

	newAppCalls int
	lastOpts    AppOptions
	newAppErr   error
	// template copied into each app so tests can inject handle failures
	app fakeApp

	analyticsSupported bool
	analyticsErr       error
	analyticsGate      chan struct{}
}

func (s *fakeSDK) NewApp(_ context.Context, o AppOptions) (App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newAppCalls++
	s.lastOpts = o
	if s.newAppErr != nil {
		return nil, s.newAppErr
	}
	app := s.app
	app.opts = o
	return &app, nil
}

func (s *fakeSDK) AnalyticsSupported(context.Context, config.ClientConfig) (bool, error) {
	if s.analyticsGate != nil {
		<-s.analyticsGate
	}
	return s.analyticsSupported, s.analyticsErr
}

func (s *fakeSDK) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newAppCalls
}

var errBoom = errors.New("boom")

func fullClientConfig() config.ClientConfig {
	return config.ClientConfig{
		Prefix:            "NEXT_PUBLIC",
		APIKey:            "key",
		AuthDomain:        "demo.firebaseapp.com",
		ProjectID:         "demo",
		StorageBucket:     "demo.appspot.com",
		MessagingSenderID: "1234",
		AppID:             "1:1234:web:abc",
	}
}
