package firebase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Credential is a parsed service-account object. Fields the SDK reads are kept
// verbatim in raw so nothing is lost when it is serialized again.
type Credential struct {
	ProjectID   string
	ClientEmail string
	raw         map[string]any
}

// ParseCredential decodes a JSON service-account object and normalizes its
// private_key. Anything other than a JSON object is rejected.
func ParseCredential(data []byte) (*Credential, error) {
	var raw map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}
	if raw == nil {
		return nil, errors.New("service account json must be an object")
	}

	if pk, ok := raw["private_key"].(string); ok {
		raw["private_key"] = NormalizePrivateKey(pk)
	}

	c := &Credential{raw: raw}
	c.ProjectID, _ = raw["project_id"].(string)
	c.ClientEmail, _ = raw["client_email"].(string)
	return c, nil
}

// NormalizePrivateKey turns literal `\n` sequences into newlines. Applying it
// twice gives the same result as applying it once.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// PrivateKey returns the normalized key material, or "" when absent.
func (c *Credential) PrivateKey() string {
	pk, _ := c.raw["private_key"].(string)
	return pk
}

// JSON serializes the normalized credential for option.WithCredentialsJSON.
func (c *Credential) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.raw); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
