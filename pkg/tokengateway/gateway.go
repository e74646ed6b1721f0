package tokengateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/utils"
)

// Gateway executes authority-signed token distributions. The user never
// signs; the distribution service holds the pool authority. Only amounts
// already released by the reward locker are ever passed here.
type Gateway interface {
	// Transfer sends amount of tokenType to walletAddress and returns the
	// transaction signature.
	Transfer(walletAddress, tokenType string, amount float64) (string, error)
}

// HTTPGateway calls the external distribution service
type HTTPGateway struct {
	BaseURL      string
	AuthorityKey string
	httpClient   *http.Client
}

// MockGateway simulates distributions for local development and testing
type MockGateway struct{}

// NewGateway creates the gateway selected by configuration
func NewGateway(cfg *config.Config) Gateway {
	if cfg.Distribution.Mock {
		return &MockGateway{}
	}
	return &HTTPGateway{
		BaseURL:      cfg.Distribution.BaseURL,
		AuthorityKey: cfg.Distribution.AuthorityKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transferRequest struct {
	WalletAddress string  `json:"walletAddress"`
	TokenType     string  `json:"tokenType"`
	Amount        float64 `json:"amount"`
}

type transferResponse struct {
	Success              bool   `json:"success"`
	TransactionSignature string `json:"transactionSignature"`
	Error                string `json:"error"`
}

// Transfer sends a distribution request to the external service
func (g *HTTPGateway) Transfer(walletAddress, tokenType string, amount float64) (string, error) {
	payload, err := json.Marshal(transferRequest{
		WalletAddress: walletAddress,
		TokenType:     tokenType,
		Amount:        amount,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, g.BaseURL+"/distribute", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.AuthorityKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("distribution request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("distribution service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result transferResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if !result.Success {
		return "", fmt.Errorf("distribution failed: %s", result.Error)
	}
	return result.TransactionSignature, nil
}

// Transfer logs the distribution and returns a generated signature
func (g *MockGateway) Transfer(walletAddress, tokenType string, amount float64) (string, error) {
	signature, err := utils.GenerateRandomString(32)
	if err != nil {
		return "", err
	}
	slog.Info("Mock token distribution", "wallet", utils.MaskWallet(walletAddress), "tokenType", tokenType, "amount", amount)
	return "mock-" + signature, nil
}
