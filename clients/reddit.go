package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	RedditTokenURL = "https://www.reddit.com/api/v1/access_token"
	RedditAPIBase  = "https://oauth.reddit.com"

	redditPageSize = 100
	redditMaxPages = 10
)

var ErrRedditCredentials = errors.New("reddit: client id and secret are required")

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	TokenURL     string // defaults to RedditTokenURL
	BaseURL      string // defaults to RedditAPIBase
}

// Reddit is an application-only (client credentials) Reddit API client.
type Reddit struct {
	base string
	c    *http.Client
}

// NewReddit builds a client whose token is fetched lazily on the first
// request and refreshed when it expires.
func NewReddit(cfg RedditConfig) (*Reddit, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrRedditCredentials
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = RedditTokenURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = RedditAPIBase
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	// the token fetch and API calls share this client, so both carry the UA
	base := &http.Client{
		Timeout:   60 * time.Second,
		Transport: userAgent{ua: cfg.UserAgent, base: http.DefaultTransport},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	c := cc.Client(ctx)
	c.Timeout = 60 * time.Second
	return &Reddit{base: strings.TrimRight(cfg.BaseURL, "/"), c: c}, nil
}

type RedditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Subreddit   string  `json:"subreddit"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

func (p RedditPost) Created() time.Time {
	return time.Unix(int64(p.CreatedUTC), 0).UTC()
}

type SearchParams struct {
	Subreddit  string
	Query      string
	Sort       string // relevance, hot, top, new, comments
	TimeFilter string // hour, day, week, month, year, all
	Limit      int    // 0 means as many as the listing returns
}

type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data RedditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search pages through /r/{sub}/search restricted to the subreddit until
// Limit posts are collected, the listing ends or the page cap is reached.
func (r *Reddit) Search(ctx context.Context, p SearchParams) ([]RedditPost, error) {
	var out []RedditPost
	after := ""
	for page := 0; page < redditMaxPages; page++ {
		n := redditPageSize
		if p.Limit > 0 {
			n = min(n, p.Limit-len(out))
		}
		q := url.Values{
			"q":           {p.Query},
			"restrict_sr": {"1"},
			"sort":        {p.Sort},
			"t":           {p.TimeFilter},
			"limit":       {strconv.Itoa(n)},
			"raw_json":    {"1"},
		}
		if after != "" {
			q.Set("after", after)
		}
		u := fmt.Sprintf("%s/r/%s/search?%s", r.base, url.PathEscape(p.Subreddit), q.Encode())

		var l listing
		if err := r.get(ctx, u, &l); err != nil {
			return nil, fmt.Errorf("reddit search r/%s: %w", p.Subreddit, err)
		}
		for _, c := range l.Data.Children {
			out = append(out, c.Data)
		}
		if p.Limit > 0 && len(out) >= p.Limit {
			return out[:p.Limit], nil
		}
		if l.Data.After == "" || len(l.Data.Children) == 0 {
			break
		}
		after = l.Data.After
	}
	return out, nil
}

func (r *Reddit) get(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := r.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
