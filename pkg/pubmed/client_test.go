package pubmed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"curalink-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const efetchFixture = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">111</PMID>
      <Article PubModel="Print">
        <Journal>
          <JournalIssue CitedMedium="Internet">
            <PubDate><Year>2021</Year><Month>Mar</Month></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Outcomes of <i>IDH1</i>-mutant glioma</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Gliomas are   common.</AbstractText>
          <AbstractText Label="RESULTS">Survival improved with CO<sub>2</sub> laser.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>222</PMID>
      <Article>
        <Journal><JournalIssue><PubDate><MedlineDate>2019 Nov-Dec</MedlineDate></PubDate></JournalIssue></Journal>
        <ArticleTitle>No abstract here</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.PubMedConfig{BaseURL: srv.URL, Tool: "curalink", RateLimit: 1000})
}

func TestSearch_SendsParamsAndDedupes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/esearch.fcgi", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pubmed", q.Get("db"))
		assert.Equal(t, "glioma", q.Get("term"))
		assert.Equal(t, "json", q.Get("retmode"))
		assert.Equal(t, "5", q.Get("retmax"))
		assert.Equal(t, "curalink", q.Get("tool"))
		assert.Empty(t, q.Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"header":{},"esearchresult":{"count":"40","idlist":["1","2","2","3"]}}`))
	})

	ids, err := c.Search(context.Background(), "glioma", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestSearch_EmptyIDList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"esearchresult":{"count":"0","idlist":[]}}`))
	})

	ids, err := c.Search(context.Background(), "zzzz", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearch_Non2xxReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "glioma", 5)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "esearch", apiErr.Endpoint)
}

func TestSearch_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.Search(context.Background(), "glioma", 5)
	assert.Error(t, err)
}

func TestFetch_ParsesArticles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/efetch.fcgi", r.URL.Path)
		assert.Equal(t, "111,222", r.URL.Query().Get("id"))
		assert.Equal(t, "xml", r.URL.Query().Get("retmode"))
		_, _ = w.Write([]byte(efetchFixture))
	})

	articles, err := c.Fetch(context.Background(), []string{"111", "222"})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "111", articles[0].PMID())
	assert.Equal(t, "Outcomes of IDH1-mutant glioma", articles[0].Title())
	assert.Equal(t, "Gliomas are common. Survival improved with CO2 laser.", articles[0].AbstractText())
	assert.Equal(t, "2021", articles[0].Year())

	assert.Equal(t, "222", articles[1].PMID())
	assert.Empty(t, articles[1].AbstractText())
	assert.Equal(t, "2019", articles[1].Year())
}

func TestFetch_NoIDsSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	articles, err := c.Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, articles)
	assert.False(t, called)
}

func TestAPIKeyIsForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		assert.Equal(t, "dev@example.org", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":["9"]}}`))
	}))
	defer srv.Close()

	c := NewClient(config.PubMedConfig{BaseURL: srv.URL + "/", APIKey: "k", Email: "dev@example.org"})
	ids, err := c.Search(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, ids)
}

func TestSearch_CanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "glioma", 5)
	assert.Error(t, err)
}

func TestNewClient_RateLimit(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PubMedConfig
		want rate.Limit
	}{
		{"no key", config.PubMedConfig{}, 3},
		{"with key", config.PubMedConfig{APIKey: "k"}, 10},
		{"explicit", config.PubMedConfig{APIKey: "k", RateLimit: 5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.cfg).(*eutilsClient)
			assert.Equal(t, tt.want, c.limiter.Limit())
		})
	}
}
