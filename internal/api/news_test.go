package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`A &amp; <b>B</b> &quot;C&quot;`, `A & B "C"`},
		{`&lt;삼성전자&gt; 실적 발표`, `<삼성전자> 실적 발표`},
		{`plain title`, `plain title`},
		// Entities outside the documented set pass through untouched.
		{`caf&eacute;`, `caf&eacute;`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanTitle(c.in))
	}
}

func TestStockNews_SanitizesTitlesOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/stock", r.URL.Path)
		assert.Equal(t, "삼성전자", r.URL.Query().Get("name"))
		w.Write([]byte(`{
			"total": 1, "start": 1, "display": 1,
			"items": [{
				"title": "<b>삼성전자</b> &amp; 협력사",
				"description": "<b>left as-is</b>",
				"link": "https://news.example.com/1"
			}]
		}`))
	}))
	defer server.Close()

	client := NewNewsClient(server.URL, time.Second, nil)

	result, err := client.StockNews(context.Background(), "삼성전자")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "삼성전자 & 협력사", result.Items[0].Title)
	assert.Equal(t, "<b>left as-is</b>", result.Items[0].Description, "only titles are sanitized")
}

func TestCryptoNews_UsesCryptoPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/crypto", r.URL.Path)
		w.Write([]byte(`{"total":0,"items":[]}`))
	}))
	defer server.Close()

	client := NewNewsClient(server.URL, time.Second, nil)
	_, err := client.CryptoNews(context.Background(), "bitcoin")
	assert.NoError(t, err)
}
