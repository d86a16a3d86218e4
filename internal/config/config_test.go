package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setClientEnv(t *testing.T, prefix string) {
	t.Helper()
	t.Setenv(prefix+"_FIREBASE_API_KEY", "key")
	t.Setenv(prefix+"_FIREBASE_AUTH_DOMAIN", "demo.firebaseapp.com")
	t.Setenv(prefix+"_FIREBASE_PROJECT_ID", "demo")
	t.Setenv(prefix+"_FIREBASE_STORAGE_BUCKET", "demo.appspot.com")
	t.Setenv(prefix+"_FIREBASE_MESSAGING_SENDER_ID", "1234")
	t.Setenv(prefix+"_FIREBASE_APP_ID", "1:1234:web:abc")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, DefaultClientPrefix, cfg.Client.Prefix)
	assert.Equal(t, PolicyFail, cfg.Admin.Policy)
	assert.Equal(t, ServiceAccountEnv, cfg.Admin.CredentialEnv)
}

func TestLoad_ClientVariables(t *testing.T) {
	setClientEnv(t, "NEXT_PUBLIC")
	t.Setenv("NEXT_PUBLIC_FIREBASE_MEASUREMENT_ID", "G-XYZ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.Client.APIKey)
	assert.Equal(t, "demo", cfg.Client.ProjectID)
	assert.Equal(t, "demo.appspot.com", cfg.Client.StorageBucket)
	assert.Equal(t, "G-XYZ", cfg.Client.MeasurementID)
	assert.Empty(t, cfg.Client.Missing())
}

func TestLoad_CustomPrefix(t *testing.T) {
	t.Setenv(ClientPrefixEnv, "VITE_")
	setClientEnv(t, "VITE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "VITE", cfg.Client.Prefix)
	assert.Equal(t, "VITE_FIREBASE_APP_ID", cfg.Client.EnvName("APP_ID"))
	assert.Empty(t, cfg.Client.Missing())
}

func TestClientConfig_Missing(t *testing.T) {
	c := ClientConfig{Prefix: "NEXT_PUBLIC", APIKey: "k", ProjectID: "p", AppID: "  "}

	assert.Equal(t, []string{
		"NEXT_PUBLIC_FIREBASE_AUTH_DOMAIN",
		"NEXT_PUBLIC_FIREBASE_STORAGE_BUCKET",
		"NEXT_PUBLIC_FIREBASE_MESSAGING_SENDER_ID",
		"NEXT_PUBLIC_FIREBASE_APP_ID",
	}, c.Missing())
}

func TestLoad_AdminCredentialAndExposedVariant(t *testing.T) {
	t.Setenv(ServiceAccountEnv, `{"type":"service_account"}`)
	t.Setenv("NEXT_PUBLIC_FIREBASE_SERVICE_ACCOUNT_KEYS", `{"type":"service_account"}`)
	t.Setenv(AdminPolicyEnv, "Degrade")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, `{"type":"service_account"}`, cfg.Admin.CredentialJSON)
	assert.Equal(t, "NEXT_PUBLIC_FIREBASE_SERVICE_ACCOUNT_KEYS", cfg.Admin.ExposedCredentialEnv)
	assert.Equal(t, PolicyDegrade, cfg.Admin.Policy)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv(AdminPolicyEnv, "explode")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), AdminPolicyEnv)
}

func TestParseAdminPolicy(t *testing.T) {
	p, err := ParseAdminPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFail, p)

	p, err = ParseAdminPolicy(" FAIL ")
	require.NoError(t, err)
	assert.Equal(t, PolicyFail, p)

	p, err = ParseAdminPolicy("degrade")
	require.NoError(t, err)
	assert.Equal(t, PolicyDegrade, p)
}
