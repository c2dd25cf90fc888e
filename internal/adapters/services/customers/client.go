package customers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"petclinic-microservices/internal/domain/gateway"
	"petclinic-microservices/internal/platform/httpclient"
	"petclinic-microservices/internal/platform/metrics"
)

// Name identifica al upstream en errores, métricas y spans.
const Name = "customers"

type Config struct {
	BaseURL string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

// Client habla con el customers-service.
type Client struct {
	http *httpclient.Client
}

var _ gateway.CustomersClient = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("customers: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Name = Name
	hc.Metrics = cfg.Metrics
	return &Client{http: hc}, nil
}

// NewFromHTTP arma el client sobre un httpclient ya configurado (tests).
func NewFromHTTP(hc *httpclient.Client) *Client {
	if hc.Name == "" {
		hc.Name = Name
	}
	return &Client{http: hc}
}

// GetOwner hace GET /owners/{ownerId}. Sin retries.
func (c *Client) GetOwner(ctx context.Context, ownerID int) (gateway.OwnerDetails, error) {
	var out gateway.OwnerDetails
	if err := c.http.GetJSON(ctx, "/owners/"+strconv.Itoa(ownerID), &out); err != nil {
		return gateway.OwnerDetails{}, err
	}
	return out, nil
}
