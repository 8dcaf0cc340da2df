package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Authenticate exchanges the stored refresh token for a bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.creds.RefreshToken == "" {
		return fmt.Errorf("no refresh token configured; authorize the app first (see AuthorizeURL)")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.creds.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token refresh failed: %s: %s", resp.Status, string(b))
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return err
	}
	if token.RefreshToken == "" {
		token.RefreshToken = c.creds.RefreshToken
	}
	c.token = &token
	return nil
}

// AuthorizeURL builds the user-consent URL for the authorization-code flow
// and returns it together with the random state parameter the caller must
// verify on the redirect.
func (c *Client) AuthorizeURL(scopes ...string) (authURL string, state string) {
	state = uuid.NewString()

	q := url.Values{}
	q.Set("client_id", c.creds.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.creds.RedirectURI)
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("state", state)

	return c.accountsURL + "/authorize?" + q.Encode(), state
}
