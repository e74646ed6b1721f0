package tokengateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewaySelectsMock(t *testing.T) {
	cfg := &config.Config{Distribution: config.DistributionConfig{Mock: true}}
	_, ok := NewGateway(cfg).(*MockGateway)
	assert.True(t, ok)

	cfg.Distribution.Mock = false
	_, ok = NewGateway(cfg).(*HTTPGateway)
	assert.True(t, ok)
}

func TestMockGatewayTransfer(t *testing.T) {
	gateway := &MockGateway{}
	signature, err := gateway.Transfer("wallet-1", "SHSY", 12.5)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(signature, "mock-"))
}

func TestHTTPGatewayTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/distribute", r.URL.Path)
		assert.Equal(t, "Bearer authority-key", r.Header.Get("Authorization"))

		var req transferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wallet-1", req.WalletAddress)
		assert.Equal(t, "SHSY", req.TokenType)
		assert.Equal(t, 12.5, req.Amount)

		json.NewEncoder(w).Encode(transferResponse{Success: true, TransactionSignature: "sig-1"})
	}))
	defer server.Close()

	gateway := &HTTPGateway{
		BaseURL:      server.URL,
		AuthorityKey: "authority-key",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}

	signature, err := gateway.Transfer("wallet-1", "SHSY", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "sig-1", signature)
}

func TestHTTPGatewayTransferFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(transferResponse{Success: false, Error: "pool empty"})
	}))
	defer server.Close()

	gateway := &HTTPGateway{
		BaseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, err := gateway.Transfer("wallet-1", "SHSY", 1)
	assert.ErrorContains(t, err, "pool empty")
}

func TestHTTPGatewayTransferBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := &HTTPGateway{
		BaseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, err := gateway.Transfer("wallet-1", "SHSY", 1)
	assert.ErrorContains(t, err, "status 500")
}
