// Package assets implements the external asset-transfer capability as an
// HTTP client of a settlement/ledger service. The capability is assumed
// atomic: a 2xx response means the value moved, anything else means it did
// not.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/heirvault/heirvault-daemon/internal/core/ports"
	"github.com/heirvault/heirvault-daemon/pkg/circuitbreaker"
)

type service struct {
	endpoint string
	// Account holding the vault funds on the external ledger.
	custodyAccount string
	httpClient     *http.Client
	cb             *gobreaker.CircuitBreaker
}

type transferRequest struct {
	Asset  string `json:"asset"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// NewService returns a ports.AssetMover talking to the transfer service at
// the given endpoint.
func NewService(
	endpoint, custodyAccount string, requestTimeout time.Duration,
) (ports.AssetMover, error) {
	if len(endpoint) <= 0 {
		return nil, fmt.Errorf("missing asset service endpoint")
	}
	if len(custodyAccount) <= 0 {
		return nil, fmt.Errorf("missing custody account")
	}

	return &service{
		endpoint:       endpoint,
		custodyAccount: custodyAccount,
		httpClient:     &http.Client{Timeout: requestTimeout},
		cb:             circuitbreaker.NewCircuitBreaker("assets"),
	}, nil
}

func (s *service) TransferIn(
	ctx context.Context, asset, from string, amount uint64,
) error {
	return s.transfer(ctx, transferRequest{
		Asset:  asset,
		From:   from,
		To:     s.custodyAccount,
		Amount: amount,
	})
}

func (s *service) TransferOut(
	ctx context.Context, asset, to string, amount uint64,
) error {
	return s.transfer(ctx, transferRequest{
		Asset:  asset,
		From:   s.custodyAccount,
		To:     to,
		Amount: amount,
	})
}

func (s *service) transfer(ctx context.Context, req transferRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	_, err = s.cb.Execute(func() (interface{}, error) {
		httpReq, err := http.NewRequestWithContext(
			ctx, http.MethodPost, s.endpoint+"/v1/transfers",
			bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf(
				"transfer rejected with status %d: %s",
				resp.StatusCode, string(msg),
			)
		}
		return nil, nil
	})
	return err
}
