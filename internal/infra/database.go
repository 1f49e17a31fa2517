package infra

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
)

// NewDatabase opens the MySQL connection, runs AutoMigrate for the full
// schema and seeds the rows the system cannot run without (voucher series,
// the comanda counter, default settings).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	if err := seedDefaults(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

// RunMigrations applies the GORM schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Categoria{},
		&model.Producto{},
		&model.Zona{},
		&model.Mesa{},
		&model.Cliente{},
		&model.SesionCaja{},
		&model.SerieComprobante{},
		&model.Comanda{},
		&model.ComandaItem{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.Pago{},
		&model.Configuracion{},
	)
}

// seedDefaults is idempotent: rows are inserted only when missing, so a
// restart never duplicates series or resets counters.
func seedDefaults(db *gorm.DB) error {
	series := []model.SerieComprobante{
		{Tipo: model.TipoNotaVenta, Serie: "NV01", Activo: true},
		{Tipo: model.TipoBoleta, Serie: "B001", Activo: true},
		{Tipo: model.TipoFactura, Serie: "F001", Activo: true},
		{Tipo: model.TipoComanda, Serie: model.SerieComanda, Activo: true},
	}
	for _, s := range series {
		var count int64
		if err := db.Model(&model.SerieComprobante{}).
			Where("tipo = ? AND serie = ?", s.Tipo, s.Serie).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	defaults := []model.Configuracion{
		{Grupo: model.GrupoPOS, Clave: model.ClaveTiempoAlertaKDS, Valor: "15"},
		{Grupo: model.GrupoNegocio, Clave: "negocio_razon_social", Valor: "Over Chef"},
		{Grupo: model.GrupoNegocio, Clave: model.ClaveNegocioRUC, Valor: "00000000000"},
		{Grupo: model.GrupoNegocio, Clave: "negocio_direccion", Valor: ""},
		{Grupo: model.GrupoNegocio, Clave: "negocio_telefono", Valor: ""},
		{Grupo: model.GrupoNegocio, Clave: "negocio_mensaje_ticket", Valor: "¡Gracias por su preferencia!"},
	}
	for _, c := range defaults {
		var count int64
		if err := db.Model(&model.Configuracion{}).
			Where("clave = ?", c.Clave).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
