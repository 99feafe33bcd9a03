package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/handler"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/middleware"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/jwt"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
)

// maxBodyBytes caps JSON bodies; file uploads declare their own limit.
const maxBodyBytes = 8 << 20

// Setup builds the Gin engine with every route mounted.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth endpoints that need no token
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// school years
			cursos := authorized.Group("/cursos")
			{
				cursos.GET("", h.Curso.List)
				cursos.GET("/activo", h.Curso.GetActivo)
				cursos.POST("", h.Curso.Create)
				cursos.PUT("/:id", h.Curso.Update)
				cursos.PUT("/:id/activate", h.Curso.Activate)
				cursos.DELETE("/:id", h.Curso.Delete)
			}

			// roster
			estudiantes := authorized.Group("/estudiantes")
			{
				estudiantes.GET("", h.Estudiante.List)
				estudiantes.GET("/:id", h.Estudiante.Get)
				estudiantes.POST("", h.Estudiante.Create)
				estudiantes.PUT("/:id", h.Estudiante.Update)
				estudiantes.PUT("/:id/estado", h.Estudiante.CambiarEstado)
				estudiantes.DELETE("/:id", h.Estudiante.Delete)
			}

			// attendance
			asistencia := authorized.Group("/asistencia")
			{
				asistencia.GET("/grid", h.Asistencia.Grid)
				asistencia.POST("/ciclar", h.Asistencia.Ciclar)
				asistencia.PUT("", h.Asistencia.Set)
			}

			// the three weighted categories share one handler shape
			mountCategoria(authorized.Group("/tareas"), h.Tareas)
			mountCategoria(authorized.Group("/proyectos"), h.Proyectos)
			mountCategoria(authorized.Group("/pruebas"), h.Pruebas)

			// daily-work rubric
			cotidiano := authorized.Group("/cotidiano")
			{
				cotidiano.PUT("/config", h.Cotidiano.SetConfig)
				cotidiano.GET("/indicadores", h.Cotidiano.ListIndicadores)
				cotidiano.POST("/indicadores", h.Cotidiano.CreateIndicador)
				cotidiano.PUT("/indicadores/:id", h.Cotidiano.UpdateIndicador)
				cotidiano.DELETE("/indicadores/:id", h.Cotidiano.DeleteIndicador)
				cotidiano.POST("/indicadores/import", h.Cotidiano.ImportIndicadores)
				cotidiano.POST("/indicadores/import-xlsx", h.Cotidiano.ImportIndicadoresXLSX)
				cotidiano.GET("/seleccion", h.Cotidiano.GetSeleccion)
				cotidiano.PUT("/seleccion", h.Cotidiano.SetSeleccion)
				cotidiano.POST("/ciclar", h.Cotidiano.CiclarNivel)
			}

			// early-warning cases
			alertas := authorized.Group("/alertas")
			{
				alertas.GET("", h.Alerta.List)
				alertas.GET("/:id", h.Alerta.Get)
				alertas.POST("", h.Alerta.Create)
				alertas.PUT("/:id", h.Alerta.Update)
				alertas.DELETE("/:id", h.Alerta.Delete)
				alertas.POST("/:id/acciones", h.Alerta.AddAtencionAction)
				alertas.DELETE("/:id/acciones/:accionID", h.Alerta.RemoveAtencionAction)
				alertas.POST("/:id/contactos", h.Alerta.AddContactLog)
				alertas.DELETE("/:id/contactos/:contactoID", h.Alerta.RemoveContactLog)
			}

			// computed summaries
			resumen := authorized.Group("/resumen")
			{
				resumen.GET("/estudiantes/:id", h.Resumen.Estudiante)
				resumen.GET("/grupo", h.Resumen.Grupo)
			}

			// downloads
			export := authorized.Group("/export")
			{
				export.GET("/resumen", h.Export.ResumenXLSX)
				export.GET("/asistencia", h.Export.AsistenciaXLSX)
				export.GET("/calendario", h.Export.CalendarioICS)
			}

			// AI drafting, rate limited per client IP
			ai := authorized.Group("/ai")
			ai.Use(middleware.RateLimit(rdb, cfg.AI.RateLimit, cfg.AI.RateWindow))
			{
				ai.POST("/comentario-prueba", h.AI.ComentarioPrueba)
				ai.POST("/comunicacion", h.AI.Comunicacion)
				ai.POST("/resumen-estudiante", h.AI.ResumenEstudiante)
				ai.POST("/comentario-informe", h.AI.ComentarioInforme)
				ai.POST("/plan-atencion", h.AI.PlanAtencion)
				ai.POST("/perfil-entrada", h.AI.PerfilEntrada)
				ai.POST("/perfil-salida", h.AI.PerfilSalida)
				ai.POST("/companion", h.AI.Companion)
			}
		}
	}

	return r
}

// mountCategoria wires the shared weighted-category routes under one group.
func mountCategoria(g *gin.RouterGroup, h *handler.EvaluacionHandler) {
	g.GET("/config", h.GetConfig)
	g.PUT("/config", h.SetConfig)
	g.GET("/items", h.ListItems)
	g.POST("/items", h.CreateItem)
	g.PUT("/items/:id", h.UpdateItem)
	g.DELETE("/items/:id", h.DeleteItem)
	g.GET("/items/:id/calificaciones", h.Calificaciones)
	g.PUT("/items/:id/calificaciones", h.Calificar)
}
