package questions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoQuestions = `[
  {"id":1,"pertanyaan":"One?","pilihan":["A","B"],"jawaban":"A"},
  {"id":2,"pertanyaan":"Two?","pilihan":["B","C"],"jawaban":"C","penjelasan":"C is right"}
]`

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, APIPath, r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoQuestions))
	}))
	defer srv.Close()

	qs, err := NewClient(srv.URL+"/").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "One?", qs[0].Prompt)
	assert.Equal(t, []string{"B", "C"}, qs[1].Options)
	assert.True(t, qs[1].HasExplanation())
}

func TestClientFetchErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, "boom", http.StatusInternalServerError},
		{"not found", http.StatusNotFound, "", http.StatusNotFound},
		{"malformed body", http.StatusOK, "{not json", 0},
		{"invalid bank", http.StatusOK, `[{"id":1,"pertanyaan":"Q","pilihan":["A","B"],"jawaban":"Z"}]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			qs, err := NewClient(srv.URL).Fetch(context.Background())
			assert.Nil(t, qs, "no partial list may accompany an error")

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, loadErr.StatusCode)
		})
	}
}

func TestClientFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).Fetch(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Zero(t, loadErr.StatusCode)
	assert.Equal(t, url+APIPath, loadErr.Source)
}
