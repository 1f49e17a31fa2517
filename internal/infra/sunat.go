package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CPEPayload is posted to the facturación sidecar, which signs the XML and
// talks to SUNAT (or the OSE). The Go side never handles certificates.
type CPEPayload struct {
	VentaID         string  `json:"venta_id"`
	RUCEmisor       string  `json:"ruc_emisor"`
	TipoComprobante string  `json:"tipo_comprobante"` // "01" factura, "03" boleta
	Serie           string  `json:"serie"`
	Numero          int64   `json:"numero"`
	Subtotal        float64 `json:"subtotal"`
	IGV             float64 `json:"igv"`
	Total           float64 `json:"total"`
	TipoDocCliente  string  `json:"tipo_doc_cliente"`
	NumDocCliente   string  `json:"num_doc_cliente"`
	FechaEmision    string  `json:"fecha_emision"`
}

// CPEResponse carries the acceptance result back from the sidecar.
type CPEResponse struct {
	Hash          string `json:"hash"`
	Estado        string `json:"estado"` // "aceptado" | "rechazado"
	Observaciones string `json:"observaciones,omitempty"`
}

// CPEClient delegates electronic-voucher emission to the sidecar over HTTP,
// keeping SUNAT outages out of the sale path.
type CPEClient struct {
	sidecarURL string
	httpClient *http.Client
}

func NewCPEClient(sidecarURL string) *CPEClient {
	return &CPEClient{
		sidecarURL: sidecarURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Emitir sends the voucher to the sidecar and returns the signed hash.
func (c *CPEClient) Emitir(ctx context.Context, payload CPEPayload) (*CPEResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("cpe: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sidecarURL+"/emitir", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cpe: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cpe: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cpe: sidecar returned %d", resp.StatusCode)
	}

	var result CPEResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("cpe: decode response: %w", err)
	}
	return &result, nil
}
