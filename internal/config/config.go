package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AdminPolicy decides what a missing or malformed admin credential does to startup.
type AdminPolicy string

const (
	// PolicyFail aborts startup with an error naming the variable.
	PolicyFail AdminPolicy = "fail"
	// PolicyDegrade logs a diagnostic and leaves the admin handles absent.
	PolicyDegrade AdminPolicy = "degrade"
)

const (
	// ServiceAccountEnv is the only variable read for the admin credential.
	ServiceAccountEnv = "FIREBASE_SERVICE_ACCOUNT_KEYS"
	// AdminPolicyEnv selects the admin AdminPolicy.
	AdminPolicyEnv = "FIREBASE_ADMIN_ON_MISSING_CREDENTIAL"
	// ClientPrefixEnv overrides the prefix of the client-side variables.
	ClientPrefixEnv = "FIREBASE_CLIENT_ENV_PREFIX"

	DefaultClientPrefix = "NEXT_PUBLIC"
)

type Config struct {
	Port                         string
	AllowedOrigins               []string
	LogLevel                     string
	SignedURLServiceAccountEmail string

	Client ClientConfig
	Admin  AdminConfig
}

// ClientConfig mirrors the web SDK configuration object.
type ClientConfig struct {
	Prefix            string
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
	MeasurementID     string

	// CredentialsFile is a service account file for the client app (GOOGLE_APPLICATION_CREDENTIALS).
	CredentialsFile string
}

// EnvName returns the prefixed variable name for a FIREBASE_* suffix.
func (c ClientConfig) EnvName(suffix string) string {
	if c.Prefix == "" {
		return "FIREBASE_" + suffix
	}
	return c.Prefix + "_FIREBASE_" + suffix
}

// Missing lists the variables of the required subset that are empty, in declaration order.
func (c ClientConfig) Missing() []string {
	required := []struct {
		suffix string
		value  string
	}{
		{"API_KEY", c.APIKey},
		{"AUTH_DOMAIN", c.AuthDomain},
		{"PROJECT_ID", c.ProjectID},
		{"STORAGE_BUCKET", c.StorageBucket},
		{"MESSAGING_SENDER_ID", c.MessagingSenderID},
		{"APP_ID", c.AppID},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, c.EnvName(r.suffix))
		}
	}
	return missing
}

type AdminConfig struct {
	CredentialEnv  string
	CredentialJSON string
	Policy         AdminPolicy

	// ExposedCredentialEnv is set when a client-prefixed copy of the credential
	// variable exists in the environment. It is never read as a credential.
	ExposedCredentialEnv string
}

// ParseAdminPolicy accepts "fail" or "degrade" (case-insensitive). Empty means fail.
func ParseAdminPolicy(s string) (AdminPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyFail):
		return PolicyFail, nil
	case string(PolicyDegrade):
		return PolicyDegrade, nil
	default:
		return "", fmt.Errorf("%s must be %q or %q, got %q", AdminPolicyEnv, PolicyFail, PolicyDegrade, s)
	}
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault(ClientPrefixEnv, DefaultClientPrefix)
	v.SetDefault(AdminPolicyEnv, string(PolicyFail))

	policy, err := ParseAdminPolicy(v.GetString(AdminPolicyEnv))
	if err != nil {
		return Config{}, err
	}

	client := ClientConfig{Prefix: strings.TrimSuffix(strings.TrimSpace(v.GetString(ClientPrefixEnv)), "_")}
	client.APIKey = v.GetString(client.EnvName("API_KEY"))
	client.AuthDomain = v.GetString(client.EnvName("AUTH_DOMAIN"))
	client.ProjectID = v.GetString(client.EnvName("PROJECT_ID"))
	client.StorageBucket = v.GetString(client.EnvName("STORAGE_BUCKET"))
	client.MessagingSenderID = v.GetString(client.EnvName("MESSAGING_SENDER_ID"))
	client.AppID = v.GetString(client.EnvName("APP_ID"))
	client.MeasurementID = v.GetString(client.EnvName("MEASUREMENT_ID"))
	client.CredentialsFile = v.GetString("GOOGLE_APPLICATION_CREDENTIALS")

	admin := AdminConfig{
		CredentialEnv:  ServiceAccountEnv,
		CredentialJSON: v.GetString(ServiceAccountEnv),
		Policy:         policy,
	}
	if exposed := client.EnvName("SERVICE_ACCOUNT_KEYS"); exposed != ServiceAccountEnv && v.GetString(exposed) != "" {
		admin.ExposedCredentialEnv = exposed
	}

	allowed := []string{}
	for _, o := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		Port:                         v.GetString("PORT"),
		AllowedOrigins:               allowed,
		LogLevel:                     v.GetString("LOG_LEVEL"),
		SignedURLServiceAccountEmail: v.GetString("SIGNED_URL_SERVICE_ACCOUNT_EMAIL"),
		Client:                       client,
		Admin:                        admin,
	}, nil
}
