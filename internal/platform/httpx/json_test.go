package httpx

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "Invalid token.")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Invalid token."}`, rec.Body.String())
}

func TestWriteJSONCached(t *testing.T) {
	payload := map[string]string{"title": "hello"}

	rec := httptest.NewRecorder()
	WriteJSONCached(rec, httptest.NewRequest(http.MethodGet, "/posts/1", nil), payload)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.JSONEq(t, `{"title":"hello"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/posts/1", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	WriteJSONCached(rec, req, payload)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteJSONCached(rec, req, map[string]string{"title": "changed"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, etag, rec.Header().Get("ETag"))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"email":"a@b.co"}`, false},
		{"malformed", `{"email":`, true},
		{"trailing data", `{"email":"a@b.co"} {}`, true},
		{"empty", ``, true},
		{"too large", `{"email":"` + strings.Repeat("a", MaxBodyBytes) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Email string `json:"email"`
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := DecodeJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBadBody), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@b.co", dst.Email)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  Page
	}{
		{"", Page{Page: 1, Limit: 10}},
		{"page=3&limit=20", Page{Page: 3, Limit: 20}},
		{"page=0&limit=-4", Page{Page: 1, Limit: 10}},
		{"page=abc&limit=xyz", Page{Page: 1, Limit: 10}},
		{"limit=1000", Page{Page: 1, Limit: 100}},
		{"page=100000000000000000&limit=100", Page{Page: MaxPage, Limit: 100}},
		{"page=99999999999999999999999", Page{Page: 1, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePage(req))
		})
	}
	assert.Equal(t, 40, Page{Page: 3, Limit: 20}.Offset())
}

func TestPageOffset_NeverNegative(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/posts?page=100000000000000000&limit=100", nil)
	assert.GreaterOrEqual(t, ParsePage(req).Offset(), 0)

	for _, p := range []Page{
		{Page: math.MaxInt, Limit: 100},
		{Page: math.MaxInt, Limit: 1},
		{Page: 0, Limit: 10},
		{Page: 2, Limit: 0},
	} {
		assert.GreaterOrEqual(t, p.Offset(), 0, "%+v", p)
	}
}
