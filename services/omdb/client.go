package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "http://www.omdbapi.com/"

// Client queries the OMDb API. One outstanding request per call, no
// pooling, no retry; failures surface immediately.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an OMDb client. An empty baseURL falls back to the
// public endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchHit is one row of an OMDb search result, in wire shape. Optional
// fields still carry the remote's "N/A" sentinel at this layer; ToMovie
// translates it away.
type SearchHit struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDBID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type searchResponse struct {
	Search       []SearchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
	Response     string      `json:"Response"`
	Error        string      `json:"Error"`
}

// Detail is the full OMDb metadata record for one title, in wire shape.
type Detail struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	IMDBRating string `json:"imdbRating"`
	IMDBVotes  string `json:"imdbVotes"`
	IMDBID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Search runs a free-text title search. A blank query and a successful
// response with zero matches both yield an empty slice; an explicit error
// envelope from the remote becomes a RejectedError carrying its message.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchHit{}, nil
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("page", "1")

	var result searchResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		msg := result.Error
		if msg == "" {
			msg = "no results"
		}
		return nil, &RejectedError{Message: msg}
	}
	if result.Search == nil {
		return []SearchHit{}, nil
	}
	return result.Search, nil
}

// FetchDetails fetches full metadata for one imdb id.
func (c *Client) FetchDetails(ctx context.Context, imdbID string) (*Detail, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var result Detail
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		msg := result.Error
		if msg == "" {
			msg = imdbID
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRemoteUnavailable, err)
	}
	return nil
}
