package dogceo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dog-users-api/internal/platform/httpclient"
	"dog-users-api/internal/platform/logger"
	"dog-users-api/internal/platform/metrics"
)

const (
	DefaultBaseURL   = "https://dog.ceo/api"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "dog-users-api/1.0"
)

// Nombres de endpoint (labels de métricas y logs).
const (
	endpointBreeds           = "breeds_list"
	endpointSubBreeds        = "sub_breeds"
	endpointRandomImage      = "random_image"
	endpointBreedImages      = "breed_images"
	endpointBreedRandomImage = "breed_random_image"
)

var (
	ErrUpstream = errors.New("dog api upstream error")
)

// Error describe una falla upstream. errors.Is(err, ErrUpstream) es true.
type Error struct {
	Endpoint   string
	StatusCode int    // HTTP status; 0 si no hubo respuesta
	Status     string // campo "status" del envelope, si se pudo leer
	Message    string // campo "message" cuando es texto (errores de dog.ceo)
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(ErrUpstream.Error())
	b.WriteString(": ")
	b.WriteString(e.Endpoint)
	if e.StatusCode != 0 {
		b.WriteString(" http_status=" + strconv.Itoa(e.StatusCode))
	}
	if e.Status != "" {
		b.WriteString(" status=" + e.Status)
	}
	if e.Message != "" {
		b.WriteString(" message=" + strconv.Quote(e.Message))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Is(target error) bool { return target == ErrUpstream }
func (e *Error) Unwrap() error        { return e.Err }

// Config es inmutable una vez construido el Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	http    *httpclient.Client
	log     logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Client)

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = DefaultUserAgent
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, fmt.Errorf("dogceo: %w", err)
	}
	hc.Headers = map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   ua,
	}

	c := &Client{
		http: hc,
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(map[string]any{"component": "dogceo"})
	return c, nil
}

// ListBreeds devuelve los nombres de raza (keys del catálogo), ordenados.
func (c *Client) ListBreeds(ctx context.Context) ([]string, error) {
	msg, err := c.fetch(ctx, endpointBreeds, "/breeds/list/all")
	if err != nil {
		return nil, err
	}
	return msg.Strings(), nil
}

// ListSubBreeds devuelve las sub-razas de breed. Una raza desconocida
// (envelope status "error" con "Breed not found...") se reporta como lista
// vacía. Cualquier otro 404 (ruta inexistente, proxy, base URL mal) es ErrUpstream.
func (c *Client) ListSubBreeds(ctx context.Context, breed string) ([]string, error) {
	msg, err := c.fetch(ctx, endpointSubBreeds, "/breed/"+url.PathEscape(breed)+"/list")
	if err != nil {
		if isUnknownBreed(err) {
			c.log.Info("unknown breed, returning no sub-breeds", map[string]any{"breed": breed})
			return []string{}, nil
		}
		return nil, err
	}
	return msg.Strings(), nil
}

// breedNotFoundPrefix es el texto con el que dog.ceo arranca el message
// cuando la raza no existe.
const breedNotFoundPrefix = "Breed not found"

func isUnknownBreed(err error) bool {
	var ue *Error
	if !errors.As(err, &ue) {
		return false
	}
	return ue.StatusCode == http.StatusNotFound &&
		ue.Status == statusError &&
		strings.HasPrefix(ue.Message, breedNotFoundPrefix)
}

// RandomImages trae count imágenes al azar. count <= 0 pide una sola (forma scalar).
func (c *Client) RandomImages(ctx context.Context, count int) ([]string, error) {
	path := "/breeds/image/random"
	if count > 0 {
		path += "/" + strconv.Itoa(count)
	}
	msg, err := c.fetch(ctx, endpointRandomImage, path)
	if err != nil {
		return nil, err
	}
	return msg.Strings(), nil
}

// BreedImages trae todas las imágenes de breed.
func (c *Client) BreedImages(ctx context.Context, breed string) ([]string, error) {
	msg, err := c.fetch(ctx, endpointBreedImages, "/breed/"+url.PathEscape(breed)+"/images")
	if err != nil {
		return nil, err
	}
	return msg.Strings(), nil
}

// RandomBreedImages trae count imágenes al azar de breed. count <= 0 pide una sola.
func (c *Client) RandomBreedImages(ctx context.Context, breed string, count int) ([]string, error) {
	path := "/breed/" + url.PathEscape(breed) + "/images/random"
	if count > 0 {
		path += "/" + strconv.Itoa(count)
	}
	msg, err := c.fetch(ctx, endpointBreedRandomImage, path)
	if err != nil {
		return nil, err
	}
	return msg.Strings(), nil
}

// fetch hace el GET, valida el envelope y devuelve el payload sin normalizar.
func (c *Client) fetch(ctx context.Context, endpoint, path string) (Message, error) {
	start := time.Now()
	msg, err := c.do(ctx, endpoint, path)
	c.metrics.ObserveUpstream(endpoint, err, time.Since(start))

	fields := map[string]any{
		"endpoint":    endpoint,
		"path":        path,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		c.log.Error("dog api request failed", fields)
		return Message{}, err
	}
	fields["kind"] = msg.Kind().String()
	c.log.Info("dog api request ok", fields)
	return msg, nil
}

func (c *Client) do(ctx context.Context, endpoint, path string) (Message, error) {
	var env envelope
	if err := c.http.GetJSON(ctx, path, &env); err != nil {
		ue := &Error{Endpoint: endpoint, Status: env.Status, Message: env.Message.Text(), Err: err}
		if code, ok := httpclient.StatusCode(err); ok {
			ue.StatusCode = code
		}
		return Message{}, ue
	}

	if env.Status != statusSuccess {
		// dog.ceo a veces repite el código HTTP dentro del envelope
		code := http.StatusOK
		if env.Code != 0 {
			code = env.Code
		}
		return Message{}, &Error{
			Endpoint:   endpoint,
			StatusCode: code,
			Status:     env.Status,
			Message:    env.Message.Text(),
		}
	}
	return env.Message, nil
}
