package spotify

// Credentials holds the OAuth application credentials and the user's
// refresh token. Obtaining the initial refresh token (browser consent) is
// outside this client; AuthorizeURL helps bootstrap it.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	RedirectURI  string
}

// Token is the bearer token returned by the accounts service.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// User is the authenticated Spotify user profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Playlist is a created or looked-up playlist.
type Playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

type artistObject struct {
	Name string `json:"name"`
}

type trackObject struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Artists []artistObject `json:"artists"`
}

type searchResponse struct {
	Tracks struct {
		Items []trackObject `json:"items"`
	} `json:"tracks"`
}

type playlistPage struct {
	Items []Playlist `json:"items"`
	Next  string     `json:"next"`
}

// apiError is the Web API error envelope.
type apiError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
