package router

import (
	"time"

	"github.com/CristopherG19/app-restaurante-cgch/internal/config"
	"github.com/CristopherG19/app-restaurante-cgch/internal/handler"
	"github.com/CristopherG19/app-restaurante-cgch/internal/middleware"
	"github.com/CristopherG19/app-restaurante-cgch/internal/model"
	"github.com/CristopherG19/app-restaurante-cgch/internal/repository"
	"github.com/CristopherG19/app-restaurante-cgch/internal/service"
	"github.com/CristopherG19/app-restaurante-cgch/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	zonaRepo := repository.NewZonaRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	serieRepo := repository.NewSerieRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo)
	mesaSvc := service.NewMesaService(mesaRepo, zonaRepo, comandaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	configSvc := service.NewConfiguracionService(configRepo, rdb)
	cajaSvc := service.NewCajaService(cajaRepo, comandaRepo)
	comandaSvc := service.NewComandaService(comandaRepo, productoRepo, mesaRepo, cajaRepo, serieRepo, configSvc)
	ventaSvc := service.NewVentaService(ventaRepo, cajaRepo, productoRepo, clienteRepo, comandaRepo, mesaRepo, serieRepo, configSvc, dispatcher)
	dashboardSvc := service.NewDashboardService(ventaRepo, comandaRepo, mesaRepo, productoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	comandasH := handler.NewComandasHandler(comandaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	configH := handler.NewConfiguracionHandler(configSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolAdmin, model.RolCajero, model.RolMesero, model.RolCocina)
	salon := middleware.RequireRole(model.RolAdmin, model.RolCajero, model.RolMesero)
	cobro := middleware.RequireRole(model.RolAdmin, model.RolCajero)
	admin := middleware.RequireRole(model.RolAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", todos, authH.Me)

		// Catalogo: todos pueden leer, solo admin escribe
		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.PATCH("/productos/:id/stock", cobro, productosH.AjustarStock)
		productos := v1.Group("/productos", admin)
		{
			productos.POST("", productosH.Crear)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		// Salon: zonas y mesas
		v1.GET("/zonas", todos, mesasH.ListarZonas)
		zonas := v1.Group("/zonas", admin)
		{
			zonas.POST("", mesasH.CrearZona)
			zonas.PUT("/:id", mesasH.ActualizarZona)
			zonas.DELETE("/:id", mesasH.EliminarZona)
		}

		v1.GET("/mesas", todos, mesasH.Listar)
		v1.GET("/mesas/:id", todos, mesasH.Obtener)
		v1.PUT("/mesas/:id/estado", salon, mesasH.CambiarEstado)
		mesas := v1.Group("/mesas", admin)
		{
			mesas.POST("", mesasH.Crear)
			mesas.PUT("/:id", mesasH.Actualizar)
			mesas.DELETE("/:id", mesasH.Eliminar)
		}

		// Clientes
		clientes := v1.Group("/clientes", cobro)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/buscar", clientesH.BuscarPorDocumento)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		// Caja
		caja := v1.Group("/caja", cobro)
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.PUT("/cerrar", cajaH.Cerrar)
			caja.GET("/actual", cajaH.Actual)
			caja.GET("/:id/resumen", cajaH.Resumen)
			caja.GET("", cajaH.Listar)
		}

		// Comandas
		comandas := v1.Group("/comandas", salon)
		{
			comandas.POST("", comandasH.Crear)
			comandas.GET("", comandasH.Listar)
			comandas.GET("/:id", comandasH.Obtener)
			comandas.PUT("/:id", comandasH.Actualizar)
			comandas.POST("/:id/items", comandasH.AgregarItems)
			comandas.PUT("/:id/enviar-cocina", comandasH.EnviarCocina)
			comandas.PUT("/:id/estado", comandasH.CambiarEstado)
		}
		// Cocina actualiza items y consulta su tablero
		v1.PUT("/comandas/item-estado/:itemId", todos, comandasH.CambiarEstadoItem)
		v1.GET("/cocina", todos, comandasH.Cocina)

		// Ventas
		ventas := v1.Group("/ventas", cobro)
		{
			ventas.POST("", ventasH.Crear)
			ventas.POST("/desde-comanda", ventasH.DesdeComanda)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.Obtener)
			ventas.PUT("/:id/anular", ventasH.Anular)
			ventas.GET("/:id/ticket", ventasH.Ticket)
		}

		// Configuracion y dashboard
		v1.GET("/configuracion", admin, configH.Listar)
		v1.PUT("/configuracion/:grupo", admin, configH.Actualizar)
		v1.GET("/dashboard/resumen", cobro, dashboardH.Resumen)

		// Usuarios, solo admin
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
