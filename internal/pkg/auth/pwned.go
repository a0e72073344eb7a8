package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
)

// DefaultPwnedEndpoint is the Pwned Passwords range API.
const DefaultPwnedEndpoint = "https://api.pwnedpasswords.com/range"

// PwnedClient queries the compromised-password corpus using the
// k-anonymity range API: only the first five hex characters of the
// password's SHA-1 ever leave the process.
type PwnedClient struct {
	client *resty.Client
}

// NewPwnedClient creates a breach-check client. The timeout should be
// short; a slow corpus must not block registration for long.
func NewPwnedClient(endpoint string, timeout time.Duration) *PwnedClient {
	if endpoint == "" {
		endpoint = DefaultPwnedEndpoint
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetTimeout(timeout).
		SetHeader("Add-Padding", "true")
	return &PwnedClient{client: client}
}

// Check returns how many times the password appears in the breach
// corpus. Connectivity failures are returned as errors, never as a
// zero count: callers that gate registration must fail closed.
func (c *PwnedClient) Check(ctx context.Context, password string) (int, error) {
	sum := sha1.Sum([]byte(password))
	hash := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := hash[:5], hash[5:]

	resp, err := c.client.R().SetContext(ctx).Get("/" + prefix)
	if err != nil {
		return 0, fmt.Errorf("%w: breach check request failed: %v", apperrors.ErrExternalService, err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("%w: breach check returned status %d", apperrors.ErrExternalService, resp.StatusCode())
	}

	for _, line := range strings.Split(resp.String(), "\n") {
		lineSuffix, countStr, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		if strings.EqualFold(lineSuffix, suffix) {
			count, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil {
				return 0, fmt.Errorf("%w: malformed breach count %q", apperrors.ErrExternalService, countStr)
			}
			return count, nil
		}
	}
	return 0, nil
}
