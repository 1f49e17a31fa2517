package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CristopherG19/app-restaurante-cgch/internal/infra"
)

const maxEmailAttempts = 3

// EmailWorker delivers receipt PDFs by mail.
type EmailWorker struct {
	mailer        *infra.Mailer
	negocioNombre string
}

func NewEmailWorker(mailer *infra.Mailer, negocioNombre string) *EmailWorker {
	return &EmailWorker{mailer: mailer, negocioNombre: negocioNombre}
}

func (w *EmailWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		return
	}

	subject := fmt.Sprintf("%s: su comprobante de pago", w.negocioNombre)
	body := "Adjuntamos su comprobante de pago. Gracias por su preferencia."

	err := withRetry(ctx, maxEmailAttempts, func(attempt int) error {
		if err := w.mailer.SendTicket(payload.To, subject, body, payload.PDFPath); err != nil {
			log.Warn().Err(err).
				Int("attempt", attempt+1).
				Str("to", payload.To).
				Msg("email_worker: envío falló, reintentando")
			return err
		}
		return nil
	})
	if err != nil {
		SendToDLQ(ctx, rdb, QueueEmail, "email", raw, err.Error(), maxEmailAttempts)
		return
	}

	log.Info().Str("to", payload.To).Str("venta_id", payload.VentaID).Msg("email_worker: comprobante enviado")
}
