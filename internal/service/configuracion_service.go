package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/CristopherG19/app-restaurante-cgch/internal/dto"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
)

const (
	configCachePrefix = "config:"
	configCacheTTL    = 60 * time.Second
)

// ConfiguracionService reads grouped settings. Hot keys (the KDS alert
// threshold is polled every few seconds by the kitchen display) go through
// a short Redis cache; writes invalidate it.
type ConfiguracionService interface {
	Listar(ctx context.Context) (map[string][]dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, grupo string, valores map[string]string) error
	GetInt(ctx context.Context, clave string, def int) int
	GetString(ctx context.Context, clave string, def string) string
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
	rdb  *redis.Client
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, rdb *redis.Client) ConfiguracionService {
	return &configuracionService{repo: repo, rdb: rdb}
}

func (s *configuracionService) Listar(ctx context.Context) (map[string][]dto.ConfiguracionResponse, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]dto.ConfiguracionResponse)
	for _, c := range configs {
		grouped[c.Grupo] = append(grouped[c.Grupo], dto.ConfiguracionResponse{
			Grupo: c.Grupo,
			Clave: c.Clave,
			Valor: c.Valor,
		})
	}
	return grouped, nil
}

func (s *configuracionService) Actualizar(ctx context.Context, grupo string, valores map[string]string) error {
	for clave, valor := range valores {
		if err := s.repo.Upsert(ctx, grupo, clave, valor); err != nil {
			return err
		}
		if s.rdb != nil {
			if err := s.rdb.Del(ctx, configCachePrefix+clave).Err(); err != nil {
				log.Warn().Err(err).Str("clave", clave).Msg("no se pudo invalidar cache de configuración")
			}
		}
	}
	return nil
}

func (s *configuracionService) GetString(ctx context.Context, clave string, def string) string {
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, configCachePrefix+clave).Result(); err == nil {
			return v
		}
	}
	v, err := s.repo.GetValor(ctx, clave)
	if err != nil {
		return def
	}
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, configCachePrefix+clave, v, configCacheTTL).Err()
	}
	return v
}

func (s *configuracionService) GetInt(ctx context.Context, clave string, def int) int {
	v := s.GetString(ctx, clave, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// TiempoAlertaKDS returns the minutes after which a fired item is flagged
// on the kitchen display.
func TiempoAlertaKDS(ctx context.Context, cfg ConfiguracionService) int {
	return cfg.GetInt(ctx, model.ClaveTiempoAlertaKDS, 15)
}
