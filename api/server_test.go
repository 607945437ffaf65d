package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/orchestrator"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/reddit"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

func init() { gin.SetMode(gin.TestMode) }

type dotSplitter struct{}

func (dotSplitter) Split(text string) []string {
	var out []string
	for _, s := range strings.SplitAfter(text, ". ") {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

type keywordScorer struct{}

func (keywordScorer) Name() string { return "keywords" }

func (keywordScorer) Score(_ context.Context, text string) (sentiment.Result, error) {
	c := 0.0
	switch {
	case strings.Contains(text, "love"), strings.Contains(text, "great"):
		c = 0.6
	case strings.Contains(text, "slow"):
		c = -0.6
	}
	return sentiment.Result{Compound: c, Label: sentiment.DefaultThresholds.Label(c)}, nil
}

type fakeReddit struct {
	subs []string
	err  error
}

func (f *fakeReddit) Analyze(_ context.Context, sub, query, _ string, _ int) (*reddit.Report, error) {
	f.subs = []string{sub}
	if f.err != nil {
		return nil, f.err
	}
	return &reddit.Report{Query: query, Summary: reddit.Summary{TotalPosts: 2}}, nil
}

func (f *fakeReddit) AnalyzeMulti(_ context.Context, subs []string, query, _ string, _ int) (*reddit.Report, error) {
	f.subs = subs
	if f.err != nil {
		return nil, f.err
	}
	return &reddit.Report{Query: query, Summary: reddit.Summary{TotalPosts: 5}}, nil
}

const annTranscript = `[Ann Lee] 00:00:01: I love Canva templates. Canva templates are great.
[Interviewer] 00:00:05: Do you use Figma?
[Ann Lee] 00:00:09: Figma is slow. Canva templates save time.
`

func newTestServer(ra RedditAnalyzer, redditErr error) *Server {
	c := cfg.Default()
	p := orchestrator.NewPipelineWith(c, keywordScorer{}, dotSplitter{})
	return NewServer(c, p, ra, redditErr)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/analyze_transcripts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(nil, nil), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDPassThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := do(t, newTestServer(nil, nil), req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestCORS(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/regenerate_plot", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := do(t, s, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = do(t, s, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAnalyzeTranscripts(t *testing.T) {
	w := do(t, newTestServer(nil, nil), uploadRequest(t, map[string]string{
		"Ann_Lee.txt": annTranscript,
		"notes.pdf":   "%PDF",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "notes.pdf", resp.Results[0].Filename)
	assert.Equal(t, unsupportedFile, resp.Results[0].Error)

	ann := resp.Results[1]
	assert.Equal(t, "Ann_Lee.txt", ann.Filename)
	assert.Equal(t, "Ann Lee", ann.Interviewee)
	assert.Equal(t, 3, ann.Lines)
	assert.Equal(t, 5, ann.Sentences)
	require.Len(t, ann.Roles, 2)
	assert.Equal(t, "Ann Lee", ann.Roles[0].Speaker)

	require.NotNil(t, resp.ServiceSplit)
	assert.Equal(t, 3, resp.ServiceSplit.SubjectOnly)
	assert.Equal(t, 2, resp.ServiceSplit.OtherServices)

	require.Len(t, resp.WordGroups, 1)
	assert.Equal(t, "template(s)", resp.WordGroups[0].Group)

	png, err := base64.StdEncoding.DecodeString(resp.PlotPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestAnalyzeTranscriptsPipelineError(t *testing.T) {
	w := do(t, newTestServer(nil, nil), uploadRequest(t, map[string]string{"slides.pptx": "x"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "slides.pptx", resp.Results[0].Filename)
	assert.Equal(t, "pipeline", resp.Results[1].Filename)
	assert.Contains(t, resp.Results[1].Error, "no .docx/.txt transcripts")
	assert.Empty(t, resp.PlotPNG)
}

func TestAnalyzeTranscriptsNoFiles(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze_transcripts", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, newTestServer(nil, nil), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegeneratePlot(t *testing.T) {
	body := `{"rows":[
		{"word":"flyer","count":3,"avg_hf_compound":0.2},
		{"word":"flyers","count":1,"avg_hf_compound":-0.4}
	],"title":"Edited"}`
	req := httptest.NewRequest(http.MethodPost, "/api/regenerate_plot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, newTestServer(nil, nil), req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp regenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.WordGroups, 1)
	assert.Equal(t, 4, resp.WordGroups[0].Count)
	assert.InDelta(t, 0.05, resp.WordGroups[0].AvgCompound, 1e-12)
	assert.NotEmpty(t, resp.PlotPNG)
}

func TestRegeneratePlotEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/regenerate_plot", strings.NewReader(`{"rows":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, newTestServer(nil, nil), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"word_groups":[],"plot_png_base64":""}`, w.Body.String())
}

func TestRegeneratePlotBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/regenerate_plot", strings.NewReader(`{"rows":`))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, newTestServer(nil, nil), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRedditAnalyze(t *testing.T) {
	fr := &fakeReddit{}
	s := newTestServer(fr, nil)

	w := do(t, s, postJSON("/api/reddit/analyze", `{"subreddit":"canva","query":"templates"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"canva"}, fr.subs)

	var rep reddit.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, "templates", rep.Query)

	w = do(t, s, postJSON("/api/reddit/analyze_multi", `{"subreddits":["canva","graphic_design"],"query":"templates","time_filter":"month"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"canva", "graphic_design"}, fr.subs)
}

func TestRedditAnalyzeErrors(t *testing.T) {
	w := do(t, newTestServer(&fakeReddit{}, nil), postJSON("/api/reddit/analyze", `{"query":"templates"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, newTestServer(&fakeReddit{}, nil), postJSON("/api/reddit/analyze", `{"subreddit":"canva","query":"x","time_filter":"decade"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, newTestServer(&fakeReddit{err: errors.New("rate limited")}, nil), postJSON("/api/reddit/analyze", `{"subreddit":"canva","query":"x"}`))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "rate limited")

	w = do(t, newTestServer(nil, reddit.ErrMissingCredentials), postJSON("/api/reddit/analyze_multi", `{"subreddits":["canva"],"query":"x"}`))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "REDDIT_CLIENT_ID")
}
