package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
)

const (
	TraceIDHeader = "X-Request-ID"

	// maxResponseSize bounds the login response body.
	maxResponseSize = 64 << 10
)

// HTTPClientConfig holds configuration for the HTTP authenticator.
type HTTPClientConfig struct {
	// LoginURL is the endpoint credentials are posted to
	LoginURL string `env:"URL" default:"http://localhost:8080/auth/login"`

	// Timeout bounds a single login request
	Timeout time.Duration `env:"TIMEOUT" default:"10s"`
}

// loginResponse is the body returned by the authentication service on success.
type loginResponse struct {
	Token string `json:"token"`
}

// HTTPClient implements Authenticator by posting a form to the authentication service.
type HTTPClient struct {
	httpClient *http.Client
	log        logging.Logger
	cfg        HTTPClientConfig
}

var _ Authenticator = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient with the given configuration.
// If httpClient is nil, a client with cfg.Timeout is used.
func NewHTTPClient(
	cfg HTTPClientConfig,
	httpClient *http.Client,
) *HTTPClient {
	if httpClient == nil {
		//nolint:exhaustruct
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &HTTPClient{
		httpClient: httpClient,
		log:        logging.GetLogger("svc.authclient.http_client"),
		cfg:        cfg,
	}
}

// Login implements Authenticator.Login. The credentials are posted as the form
// fields "username" and "password".
//
// Status 200 with a non-empty token accepts; 200 with an empty token, 400, 401
// and 403 reject. Every other status, transport failure, or unreadable body is
// reported as an error wrapping domain.ErrTransportUnavailable.
//
//nolint:cyclop
func (hc *HTTPClient) Login(ctx context.Context, identifier, secret string) (_ domain.SessionToken, ok bool, err error) {
	log := hc.log.With(logging.Group("http", "url", hc.cfg.LoginURL))

	defer func() {
		switch {
		case err != nil:
			log.WarnContext(ctx, "login request failed", "error", err)
		case !ok:
			log.InfoContext(ctx, "login rejected")
		default:
			log.DebugContext(ctx, "login accepted")
		}
	}()

	form := url.Values{
		"username": {identifier},
		"password": {secret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.cfg.LoginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if traceID, ok := context_.TraceIDFromContext(ctx); ok {
		req.Header.Set(TraceIDHeader, traceID)
	}

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return "", false, errors.Join(domain.ErrTransportUnavailable, fmt.Errorf("post: %w", err))
	}
	defer resp.Body.Close()

	log = log.With("status", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: unexpected status %d", domain.ErrTransportUnavailable, resp.StatusCode)
	}

	var body loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return "", false, errors.Join(domain.ErrTransportUnavailable, fmt.Errorf("decode response: %w", err))
	}

	token := domain.SessionToken(strings.TrimSpace(body.Token))
	if token.IsZero() {
		return "", false, nil
	}

	return token, true, nil
}
