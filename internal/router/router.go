package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/config"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/handler"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/middleware"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	txRunner := repository.NewTxRunner(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	comandaRepo := repository.NewComandaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	empresaSvc := service.NewEmpresaService(empresaRepo, usuarioRepo)
	usuarioSvc := service.NewUsuarioService(usuarioRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, categoriaRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, comandaRepo, usuarioRepo, empresaRepo, txRunner, dispatcher)
	comandaSvc := service.NewComandaService(comandaRepo, caixaRepo, produtoRepo, usuarioRepo, txRunner)
	pagamentoSvc := service.NewPagamentoService(comandaRepo, caixaRepo, txRunner)
	relatorioSvc := service.NewRelatorioService(comandaRepo)
	dashboardSvc := service.NewDashboardService(comandaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	empresasH := handler.NewEmpresaHandler(empresaSvc)
	usuariosH := handler.NewUsuarioHandler(usuarioSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	categoriasH := handler.NewCategoriaHandler(categoriaSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	comandasH := handler.NewComandaHandler(comandaSvc, pagamentoSvc)
	relatoriosH := handler.NewRelatorioHandler(relatorioSvc, dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — JWT, then tenant gate (active company + license)
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	empresaMW := middleware.EmpresaGuard(empresaSvc)

	operacional := []string{model.RoleAdminEmpresa, model.RoleGarcom, model.RoleCaixa}
	gestao := []string{model.RoleAdminEmpresa}

	api := r.Group("/api", jwtMW, empresaMW)
	{
		caixa := api.Group("/caixa", middleware.RequireRole(model.RoleAdminEmpresa, model.RoleCaixa))
		{
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.GET("/status", caixaH.Status)
			caixa.POST("/movimentacao", caixaH.Movimentacao)
			caixa.GET("/detalhes-fechamento", caixaH.DetalhesFechamento)
			caixa.POST("/fechar", caixaH.Fechar)
			caixa.GET("/:id/relatorio", caixaH.Relatorio)
		}

		comandas := api.Group("/comandas", middleware.RequireRole(operacional...))
		{
			comandas.POST("", comandasH.Criar)
			comandas.GET("", comandasH.Listar)
			comandas.GET("/:id", comandasH.Visualizar)
			comandas.POST("/:id/itens", comandasH.AdicionarItem)
			comandas.PUT("/:id/itens/:itemId", comandasH.AtualizarItem)
			comandas.DELETE("/:id/itens/:itemId", comandasH.RemoverItem)
			comandas.POST("/:id/cancelar", comandasH.Cancelar)
			comandas.POST("/:id/pagar", middleware.RequireRole(model.RoleAdminEmpresa, model.RoleCaixa), comandasH.Pagar)
		}

		// Menu — all staff read, admin writes
		api.GET("/produtos", middleware.RequireRole(operacional...), produtosH.Listar)
		api.GET("/produtos/:id", middleware.RequireRole(operacional...), produtosH.Buscar)
		produtos := api.Group("/produtos", middleware.RequireRole(gestao...))
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Remover)
		}

		api.GET("/categorias", middleware.RequireRole(operacional...), categoriasH.Listar)
		categorias := api.Group("/categorias", middleware.RequireRole(gestao...))
		{
			categorias.POST("", categoriasH.Criar)
			categorias.PUT("/:id", categoriasH.Atualizar)
			categorias.DELETE("/:id", categoriasH.Remover)
		}

		usuarios := api.Group("/usuarios", middleware.RequireRole(gestao...))
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
		}

		relatorios := api.Group("/relatorios", middleware.RequireRole(gestao...))
		{
			relatorios.GET("/vendas", relatoriosH.Vendas)
		}
		api.GET("/dashboard", middleware.RequireRole(operacional...), relatoriosH.Dashboard)

		// Tenant management — global administrator only
		admin := api.Group("/admin", middleware.RequireRole(model.RoleAdminGlobal))
		{
			admin.POST("/empresas", empresasH.Criar)
			admin.GET("/empresas", empresasH.Listar)
			admin.GET("/empresas/:id", empresasH.Buscar)
			admin.PUT("/empresas/:id", empresasH.Atualizar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
