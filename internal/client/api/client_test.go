package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/coinbank/internal/client/banktest"
	"github.com/dmitrijs2005/coinbank/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string) (*Client, *banktest.Server) {
	t.Helper()
	srv := banktest.NewServer()
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", nil, StaticToken(token), logging.Nop()), srv
}

func TestRequest_SetsHeaders(t *testing.T) {
	c, srv := newTestClient(t, "tok1")

	_, err := c.Card(context.Background())
	require.NoError(t, err)

	reqs := srv.RequestsTo(banktest.RouteCard)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer tok1", reqs[0].Authorization)
	assert.Equal(t, "application/json", reqs[0].ContentType)
	_, err = uuid.Parse(reqs[0].RequestID)
	assert.NoError(t, err, "request id must be a uuid")
}

func TestRequest_OmitsAuthorizationWithoutToken(t *testing.T) {
	c, srv := newTestClient(t, "")

	_, err := c.Register(context.Background(), "bob", "pass")
	require.NoError(t, err)

	reqs := srv.RequestsTo(banktest.RouteRegister)
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, map[string]any{"username": "bob", "password": "pass"}, reqs[0].Body)
}

func TestRequest_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		raw     string
		wantIs  error
		wantMsg string
	}{
		{name: "429", status: http.StatusTooManyRequests, raw: `{"error":"slow down"}`, wantIs: ErrRateLimited},
		{name: "503", status: http.StatusServiceUnavailable, raw: ``, wantIs: ErrServiceUnavailable},
		{name: "504", status: http.StatusGatewayTimeout, raw: `oops`, wantIs: ErrServiceUnavailable},
		{name: "400 with message", status: http.StatusBadRequest, raw: `{"error":"Insufficient funds"}`, wantMsg: "Insufficient funds"},
		{name: "500 without body", status: http.StatusInternalServerError, raw: ``, wantMsg: "API error: 500"},
		{name: "401 html body", status: http.StatusUnauthorized, raw: `<html>nope</html>`, wantMsg: "API error: 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t, "tok")
			srv.RespondRaw(banktest.RouteTransfer, tt.status, tt.raw)

			_, err := c.Transfer(context.Background(), "u2", mustDecimal(t, "1"))
			require.Error(t, err)

			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
				return
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestRequest_LoginDefaultMessage(t *testing.T) {
	c, srv := newTestClient(t, "")
	srv.RespondRaw(banktest.RouteLogin, http.StatusUnauthorized, ``)

	_, err := c.Login(context.Background(), "alice", "secret")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Login failed", apiErr.Message)
}

func TestRequest_TransportFailure(t *testing.T) {
	srv := banktest.NewServer()
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil, nil, logging.Nop())
	_, err := c.Card(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "request failed")
	assert.False(t, errors.Is(err, ErrRateLimited))
}

func TestRequest_LenientDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty body", raw: ``, want: ""},
		{name: "not json", raw: `hello`, want: ""},
		{name: "wrong type", raw: `{"cardCode": 12}`, want: ""},
		{name: "ok", raw: `{"cardCode": "ABCD-1234"}`, want: "ABCD-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t, "tok")
			srv.RespondRaw(banktest.RouteCard, http.StatusOK, tt.raw)

			resp, err := c.Card(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.CardCode)
		})
	}
}

func TestRequest_ContextCancelled(t *testing.T) {
	c, _ := newTestClient(t, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Card(ctx)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, context.Canceled)
}
