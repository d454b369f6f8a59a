package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Credentials identifies the service account used for read-only
// spreadsheet access. PrivateKey may be the raw PEM, base64-encoded PEM,
// or PEM with literal \n escapes as it often arrives through environment
// variables; all three forms are accepted.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
}

type Client struct {
	service *sheets.Service
}

func NewClient(ctx context.Context, creds Credentials) (*Client, error) {
	key, err := normalizePrivateKey(creds.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid service account private key: %w", err)
	}

	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(key),
		Scopes:     []string{sheets.SpreadsheetsReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// NewClientFromFile builds a client from a service account JSON key file,
// convenient for local development.
func NewClientFromFile(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp.Values, nil
}

func normalizePrivateKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("private key is empty")
	}

	if !strings.Contains(key, "-----BEGIN") {
		decoded, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return "", fmt.Errorf("key is neither PEM nor base64: %w", err)
		}
		key = string(decoded)
	}

	// Env vars frequently deliver the PEM with escaped newlines.
	key = strings.ReplaceAll(key, `\n`, "\n")

	if !strings.Contains(key, "-----BEGIN") {
		return "", fmt.Errorf("key does not contain a PEM block")
	}

	return key, nil
}
