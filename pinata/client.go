// Package pinata cria URLs assinadas de upload na API v3 da Pinata.
package pinata

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

	"github.com/addegbenga/mip-dapp/logger"
)

var ErrMissingJWT = errors.New("PINATA_JWT não configurado")

// SignedURLExpires é a validade, em segundos, de toda URL de upload emitida.
const SignedURLExpires = 30

// SignedURLCreator emite URLs de upload pré-assinadas.
type SignedURLCreator interface {
	CreateSignedURL(ctx context.Context, expires int) (string, error)
}

type Config struct {
	JWT        string
	UploadsURL string
	Timeout    time.Duration
}

// Client fala com o endpoint de uploads da Pinata.
type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger obrigatório")
	}
	if strings.TrimSpace(cfg.JWT) == "" {
		return nil, ErrMissingJWT
	}
	if strings.TrimSpace(cfg.UploadsURL) == "" {
		cfg.UploadsURL = "https://uploads.pinata.cloud"
	}
	cfg.UploadsURL = strings.TrimRight(strings.TrimSpace(cfg.UploadsURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		log:        log.With("client", "PinataClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}, nil
}

type signRequest struct {
	Network string `json:"network"`
	Date    int64  `json:"date"`
	Expires int    `json:"expires"`
}

type signResponse struct {
	Data string `json:"data"`
}

// CreateSignedURL pede uma URL de upload público válida por expires segundos.
func (c *Client) CreateSignedURL(ctx context.Context, expires int) (string, error) {
	if expires <= 0 {
		return "", fmt.Errorf("expires deve ser positivo: %d", expires)
	}
	body, err := json.Marshal(signRequest{Network: "public", Date: c.now().Unix(), Expires: expires})
	if err != nil {
		return "", fmt.Errorf("falha ao serializar requisição: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadsURL+"/v3/files/sign", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("falha ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao chamar pinata: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("falha ao ler resposta da pinata: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("pinata retornou status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var out signResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("falha ao decodificar resposta da pinata: %w", err)
	}
	if out.Data == "" {
		return "", fmt.Errorf("pinata não retornou url assinada")
	}
	c.log.Debug("URL assinada criada", "expires", expires)
	return out.Data, nil
}
