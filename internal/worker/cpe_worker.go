package worker

// Processes electronic-voucher jobs from QueueCPE: calls the facturación
// sidecar through the circuit breaker with exponential backoff, stores the
// returned hash, renders the receipt PDF and chains the email job when the
// client left an address.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CristopherG19/app-restaurante-cgch/internal/infra"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

const maxCPEAttempts = 3

// CPEJobPayload is the job envelope sent to QueueCPE.
type CPEJobPayload struct {
	VentaID string `json:"venta_id"`
}

// EmailJobPayload chains from a successful emission.
type EmailJobPayload struct {
	VentaID string `json:"venta_id"`
	To      string `json:"to"`
	PDFPath string `json:"pdf_path"`
}

type CPEWorker struct {
	client         *infra.CPEClient
	breaker        *infra.CircuitBreaker
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	rucEmisor      string
	negocioNombre  string
}

func NewCPEWorker(
	client *infra.CPEClient,
	breaker *infra.CircuitBreaker,
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath, rucEmisor, negocioNombre string,
) *CPEWorker {
	return &CPEWorker{
		client:         client,
		breaker:        breaker,
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		rucEmisor:      rucEmisor,
		negocioNombre:  negocioNombre,
	}
}

func (w *CPEWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload CPEJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cpe_worker: invalid payload")
		return
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("cpe_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("cpe_worker: venta not found")
		return
	}
	if venta.TipoComprobante == model.TipoNotaVenta {
		// internal vouchers never reach SUNAT
		return
	}

	var resp *infra.CPEResponse
	emitErr := withRetry(ctx, maxCPEAttempts, func(attempt int) error {
		return w.breaker.Execute(func() error {
			r, err := w.client.Emitir(ctx, w.buildPayload(venta))
			if err != nil {
				log.Warn().Err(err).
					Int("attempt", attempt+1).
					Str("venta_id", payload.VentaID).
					Msg("cpe_worker: emisión falló, reintentando")
				return err
			}
			resp = r
			return nil
		})
	})
	if emitErr != nil {
		SendToDLQ(ctx, rdb, QueueCPE, "cpe", raw, emitErr.Error(), maxCPEAttempts)
		return
	}

	venta.HashCPE = &resp.Hash
	if err := w.ventaRepo.Update(ctx, nil, venta); err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("cpe_worker: no se pudo guardar hash")
		return
	}

	pdfPath, err := infra.GenerateTicketPDF(venta, w.negocioNombre, w.rucEmisor, venta.QRPayload(w.rucEmisor), w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("cpe_worker: pdf falló")
		return
	}
	venta.PDFPath = &pdfPath
	if err := w.ventaRepo.Update(ctx, nil, venta); err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("cpe_worker: no se pudo guardar pdf_path")
	}

	if venta.Cliente != nil && venta.Cliente.Email != nil && *venta.Cliente.Email != "" {
		_ = w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
			VentaID: payload.VentaID,
			To:      *venta.Cliente.Email,
			PDFPath: pdfPath,
		})
	}

	log.Info().
		Str("venta_id", payload.VentaID).
		Str("comprobante", venta.NumeroComprobante()).
		Msg("cpe_worker: comprobante emitido")
}

func (w *CPEWorker) buildPayload(v *model.Venta) infra.CPEPayload {
	tipoDoc := "03"
	if v.TipoComprobante == model.TipoFactura {
		tipoDoc = "01"
	}
	p := infra.CPEPayload{
		VentaID:         v.ID.String(),
		RUCEmisor:       w.rucEmisor,
		TipoComprobante: tipoDoc,
		Serie:           v.Serie,
		Numero:          v.Numero,
		Subtotal:        v.Subtotal.InexactFloat64(),
		IGV:             v.IGV.InexactFloat64(),
		Total:           v.Total.InexactFloat64(),
		TipoDocCliente:  "0",
		NumDocCliente:   "-",
		FechaEmision:    v.FechaEmision.Format("2006-01-02"),
	}
	if v.Cliente != nil {
		p.TipoDocCliente = v.Cliente.TipoDocumento
		p.NumDocCliente = v.Cliente.NumeroDocumento
	}
	return p
}

// withRetry runs fn up to maxAttempts times with exponential backoff
// (1s, 2s, 4s…), honoring context cancellation between attempts.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		if lastErr = fn(attempt); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("agotados %d intentos: %w", maxAttempts, lastErr)
}
