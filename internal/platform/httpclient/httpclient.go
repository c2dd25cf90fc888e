package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petclinic-microservices/internal/platform/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20 // 1MB
)

var tracer = otel.Tracer("httpclient")

// Client envuelve *http.Client con helpers comunes para adapters.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, DoJSON puede recibir paths relativos

	// Name identifica al upstream en errores, métricas y spans.
	Name    string
	Metrics *metrics.Metrics
}

// New crea un Client con timeout razonable.
// El timeout es el deadline total de cada llamada (incluye leer el body).
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewWithBaseURL crea un Client con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if strings.TrimSpace(baseURL) == "" {
		return c, nil
	}
	_, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// Kind clasifica las fallas de un upstream.
type Kind string

const (
	KindNotFound  Kind = "not_found"
	KindTransport Kind = "transport"
	KindProtocol  Kind = "protocol"
)

// UpstreamError es la señal uniforme de falla de un upstream.
// - NotFound: 404
// - Protocol: otro no-2xx o body que no decodifica
// - Transport: red, TLS, timeout
type UpstreamError struct {
	Upstream   string
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	b.WriteString("upstream")
	if e.Upstream != "" {
		b.WriteString(" " + e.Upstream)
	}
	b.WriteString(": " + string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Body != "" {
		b.WriteString(" body=" + e.Body)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// KindOf devuelve el Kind si err (o algo que envuelve) es un *UpstreamError.
func KindOf(err error) (Kind, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return "", false
}

// DoJSON hace un request JSON.
// - method: GET/POST/etc
// - pathOrURL: puede ser URL absoluta o path relativo si BaseURL está seteado
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Toda falla del upstream vuelve como *UpstreamError.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) (err error) {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	ctx, span := tracer.Start(ctx, "HTTP "+method+" "+c.Name)
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", fullURL),
	)
	started := time.Now()
	defer func() {
		outcome := "ok"
		if kind, ok := KindOf(err); ok {
			outcome = string(kind)
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		c.Metrics.ObserveUpstream(c.Name, outcome, time.Since(started))
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	// Defaults
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	// Extra headers
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return c.fail(KindTransport, 0, "", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	// Leer body (limitado) para errores / decode
	raw, err := readAtMost(resp.Body, maxBodyBytes)
	if err != nil {
		return c.fail(KindTransport, resp.StatusCode, "", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return c.fail(KindNotFound, resp.StatusCode, strings.TrimSpace(string(raw)), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(KindProtocol, resp.StatusCode, strings.TrimSpace(string(raw)), nil)
	}

	if out == nil {
		return nil
	}
	// Un 2xx sin body no sirve si esperamos un documento.
	if len(bytes.TrimSpace(raw)) == 0 {
		return c.fail(KindProtocol, resp.StatusCode, "", errors.New("empty body"))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return c.fail(KindProtocol, resp.StatusCode, "", fmt.Errorf("unmarshal json: %w", err))
	}

	return nil
}

// GetJSON es el atajo para GET sin body ni headers extra.
func (c *Client) GetJSON(ctx context.Context, pathOrURL string, out any) error {
	return c.DoJSON(ctx, http.MethodGet, pathOrURL, nil, nil, out)
}

func (c *Client) fail(kind Kind, status int, body string, err error) error {
	return &UpstreamError{
		Upstream:   c.Name,
		Kind:       kind,
		StatusCode: status,
		Body:       body,
		Err:        err,
	}
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = maxBodyBytes
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
