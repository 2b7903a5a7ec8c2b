package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/pkg/errors"
)

func TestClientSendAppliesAuthAndHeaders(t *testing.T) {
	var got struct {
		method, key, accept, contentType string
		body                             map[string]string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.key = r.Header.Get("x-api-key")
		got.accept = r.Header.Get("Accept")
		got.contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got.body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	c := New(&HeaderAuth{Header: "x-api-key", Key: "secret"})
	resp, err := c.Send(context.Background(), http.MethodPost, srv.URL, map[string]string{"name": "Samba"})
	require.NoError(t, err)

	var out struct {
		ID int `json:"id"`
	}
	require.NoError(t, DecodeResponse(resp, "test", &out))

	assert.Equal(t, 7, out.ID)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "secret", got.key)
	assert.Equal(t, "application/json", got.accept)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "Samba", got.body["name"])
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   "slow down",
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsRateLimited(err))
			},
		},
		{
			name:   "unavailable",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsProviderUnavailable(err))
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsNotFound(err))
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   "{",
			check: func(t *testing.T, err error) {
				var pe *errors.ParseError
				assert.ErrorAs(t, err, &pe)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New(nil).Get(context.Background(), srv.URL+"/search")
			require.NoError(t, err)

			var out map[string]any
			err = DecodeResponse(resp, "test", &out)
			require.Error(t, err)
			tt.check(t, err)

			var apiErr *errors.APIError
			if tt.status != http.StatusOK {
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "test", apiErr.Provider)
				assert.Equal(t, "/search", apiErr.Endpoint)
				assert.Equal(t, tt.body, apiErr.Message)
			}
		})
	}
}
