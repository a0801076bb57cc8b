package update

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current   string
		candidate string
		want      bool
	}{
		{"1.2.0", "1.2.1", true},
		{"1.2.0", "1.3.0", true},
		{"1.2.0", "2.0.0", true},
		{"1.2.0", "v1.2.1", true},
		{"1.2.0", "1.2.0", false},
		{"1.2.0", "1.1.9", false},
		{"1.2.0", "1.2", false},
		{"1.2", "1.2.1", true},
		{"1.2.0", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+"_vs_"+tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewer(tt.current, tt.candidate))
		})
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v99.0.0", "html_url": "https://example.com/release"}`))
	}))
	defer srv.Close()

	checker := NewCheckerWithEndpoint(srv.Client(), srv.URL)

	newer, release, err := checker.Check()
	require.NoError(t, err)
	assert.True(t, newer)
	assert.Equal(t, "v99.0.0", release.TagName)
	assert.Equal(t, "https://example.com/release", release.HTMLURL)
}

func TestCheck_FeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	checker := NewCheckerWithEndpoint(srv.Client(), srv.URL)

	_, _, err := checker.Check()
	assert.Error(t, err)
}
