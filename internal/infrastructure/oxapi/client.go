// Package oxapi es el cliente HTTP de la API REST del backend del dashboard.
// Usa net/http de la librería estándar; el backend es JSON plano sin SDK propio.
package oxapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/ports"
	"github.com/jhoicas/ox-dashboard/internal/domain/entity"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa BackendAPI.
var _ ports.BackendAPI = (*Client)(nil)

// Mensajes de error mostrados al usuario.
const (
	MsgRequestFailed   = "Request failed"
	MsgNetworkFailure  = "Unable to reach the server"
	MsgInvalidResponse = "Invalid response from server"
)

// Límite de lectura del cuerpo de respuesta.
const maxBodyBytes = 4 << 20

// Error único tipo de error del cliente: red, estado no-2xx o cuerpo mal formado.
// Message es apto para mostrarse tal cual en pantalla.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Observer recibe la duración y el resultado de cada llamada (métricas).
type Observer interface {
	ObserveUpstream(op, outcome string, d time.Duration)
}

// Client cliente de la API del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	observer   Observer
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l } }

// WithObserver inyecta el observador de métricas.
func WithObserver(o Observer) Option { return func(c *Client) { c.observer = o } }

// New construye el cliente. timeout 0 deja los tiempos al transporte por defecto.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOptions opciones de una llamada.
type RequestOptions struct {
	Method string
	Body   any  // nil = sin cuerpo
	Auth   bool // adjuntar Authorization: Bearer <token> si la sesión tiene token
	Op     string
}

// Request ejecuta la llamada y decodifica el JSON de la respuesta en out (puede ser nil).
// Sin token en la sesión, Auth no agrega la cabecera: es el servidor quien rechaza.
func (c *Client) Request(ctx context.Context, tokens ports.TokenSource, path string, opts RequestOptions, out any) (err error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	op := opts.Op
	if op == "" {
		op = method + " " + path
	}

	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		if c.observer != nil {
			c.observer.ObserveUpstream(op, outcome, time.Since(start))
		}
	}()

	var body io.Reader
	if opts.Body != nil {
		payload, mErr := json.Marshal(opts.Body)
		if mErr != nil {
			return &Error{Message: MsgRequestFailed, Err: fmt.Errorf("oxapi: serializar request: %w", mErr)}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Message: MsgRequestFailed, Err: fmt.Errorf("oxapi: crear HTTP request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if opts.Auth && tokens != nil {
		if tok := tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("llamada HTTP fallida")
		return &Error{Message: MsgNetworkFailure, Err: fmt.Errorf("oxapi: %s: %w", op, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Message: MsgNetworkFailure, Err: fmt.Errorf("oxapi: leer respuesta: %w", err)}
	}

	c.log.Debug().Str("op", op).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("respuesta upstream")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Message: errorMessage(raw),
			Err:     fmt.Errorf("oxapi: %s: HTTP %d", op, resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: MsgInvalidResponse, Err: fmt.Errorf("oxapi: deserializar %s: %w", op, err)}
	}
	return nil
}

// errorMessage extrae el campo message del cuerpo de error. Acepta string o lista de strings
// (validaciones del backend); si no hay, usa el mensaje genérico.
func errorMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return MsgRequestFailed
	}
	var s string
	if err := json.Unmarshal(body.Message, &s); err == nil {
		if s == "" {
			return MsgRequestFailed
		}
		return s
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil && len(list) > 0 {
		return strings.Join(list, ",")
	}
	return MsgRequestFailed
}

// ── Operaciones ──────────────────────────────────────────────────────────────

// BeginLogin POST /auth/login {email} → {otp}.
func (c *Client) BeginLogin(ctx context.Context, email string) (*dto.BeginLoginResponse, error) {
	var out dto.BeginLoginResponse
	err := c.Request(ctx, nil, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email},
		Op:     "begin_login",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyLogin POST /auth/verify {email, otp} → {token}.
func (c *Client) VerifyLogin(ctx context.Context, email, otp string) (*dto.VerifyLoginResponse, error) {
	var out dto.VerifyLoginResponse
	err := c.Request(ctx, nil, "/auth/verify", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "otp": otp},
		Op:     "verify_login",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterCompany POST /register-company {subdomain, token} → {message, role, companyId}.
func (c *Client) RegisterCompany(ctx context.Context, tokens ports.TokenSource, subdomain, apiToken string) (*dto.RegisterCompanyResponse, error) {
	var out dto.RegisterCompanyResponse
	err := c.Request(ctx, tokens, "/register-company", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"subdomain": subdomain, "token": apiToken},
		Auth:   true,
		Op:     "register_company",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCompany DELETE /company/{id} → {message}.
func (c *Client) DeleteCompany(ctx context.Context, tokens ports.TokenSource, companyID int) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	err := c.Request(ctx, tokens, fmt.Sprintf("/company/%d", companyID), RequestOptions{
		Method: http.MethodDelete,
		Auth:   true,
		Op:     "delete_company",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts GET /products?page=&size= → lista normalizada.
func (c *Client) ListProducts(ctx context.Context, tokens ports.TokenSource, page, size int) ([]entity.Product, error) {
	var raw json.RawMessage
	err := c.Request(ctx, tokens, fmt.Sprintf("/products?page=%d&size=%d", page, size), RequestOptions{
		Method: http.MethodGet,
		Auth:   true,
		Op:     "list_products",
	}, &raw)
	if err != nil {
		return nil, err
	}
	products, err := DecodeProducts(raw)
	if err != nil {
		return nil, &Error{Message: MsgInvalidResponse, Err: err}
	}
	return products, nil
}

// ErrUnexpectedShape la respuesta de productos no es lista ni sobre {data|items}.
var ErrUnexpectedShape = errors.New("oxapi: forma de respuesta de productos inesperada")

// DecodeProducts normaliza las tres formas que devuelve el backend a una sola lista:
// [..], {"data": [..]} o {"items": [..]}. data tiene prioridad si no es null.
func DecodeProducts(raw []byte) ([]entity.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedShape
	}

	switch trimmed[0] {
	case '[':
		var list []entity.Product
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("oxapi: decodificar lista de productos: %w", err)
		}
		return nonNil(list), nil
	case '{':
		var envelope struct {
			Data  json.RawMessage `json:"data"`
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("oxapi: decodificar sobre de productos: %w", err)
		}
		for _, candidate := range []json.RawMessage{envelope.Data, envelope.Items} {
			if isAbsent(candidate) {
				continue
			}
			c := bytes.TrimSpace(candidate)
			if c[0] != '[' {
				return nil, ErrUnexpectedShape
			}
			var list []entity.Product
			if err := json.Unmarshal(c, &list); err != nil {
				return nil, fmt.Errorf("oxapi: decodificar productos: %w", err)
			}
			return nonNil(list), nil
		}
		return []entity.Product{}, nil
	default:
		return nil, ErrUnexpectedShape
	}
}

func isAbsent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func nonNil(list []entity.Product) []entity.Product {
	if list == nil {
		return []entity.Product{}
	}
	return list
}
