package staging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"cart-engine/internal/pkg/config"
	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// wire types for the staging endpoint.
type stagingRequestBody struct {
	ClientName  string               `json:"client_name"`
	Products    []stagingProductBody `json:"products"`
	TotalAmount int64                `json:"total_amount"`
	Currency    string               `json:"currency"`
}

type stagingProductBody struct {
	ProductID    string `json:"product_id"`
	Description  string `json:"description"`
	ThumbnailRef string `json:"thumbnail_ref,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
}

type stagingResponseBody struct {
	RedirectURL string `json:"redirect_url"`
}

// Client posts staging requests to the remote endpoint and returns the
// redirect target. It never retries; repeated attempts are the caller's
// decision and are deduplicated remotely via the Idempotency-Key header.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(cfg config.StagingConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
	}
}

func (c *Client) Stage(ctx context.Context, req shared.StagingRequest) (string, error) {
	body := stagingRequestBody{
		ClientName:  req.ClientName,
		Products:    make([]stagingProductBody, len(req.Products)),
		TotalAmount: req.TotalAmount,
		Currency:    req.Currency,
	}
	for i, p := range req.Products {
		body.Products[i] = stagingProductBody{
			ProductID:    p.ProductID,
			Description:  p.Description,
			ThumbnailRef: p.ThumbnailRef,
			Quantity:     p.Quantity,
			UnitPrice:    p.UnitPrice,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", wrapErr(KindBadResponse, "marshal staging request failed", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", wrapErr(KindTransport, "build staging request failed", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Nonce != uuid.Nil {
		httpReq.Header.Set("Idempotency-Key", req.Nonce.String())
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", wrapErr(KindTransport, "staging request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", wrapErr(KindTransport, "read staging response failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", wrapErr(KindRemoteRejected, fmt.Sprintf("staging endpoint returned %d", resp.StatusCode), nil)
	}

	var respBody stagingResponseBody
	if err := json.Unmarshal(data, &respBody); err != nil {
		return "", wrapErr(KindBadResponse, "decode staging response failed", err)
	}
	if respBody.RedirectURL == "" {
		return "", wrapErr(KindBadResponse, "staging response missing redirect_url", nil)
	}

	return respBody.RedirectURL, nil
}
