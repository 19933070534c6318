package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/auth"
	"github.com/BruksfildServices01/production-board/internal/config"
	"github.com/BruksfildServices01/production-board/internal/domain/access"
	"github.com/BruksfildServices01/production-board/internal/domain/appointment"
	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/domain/client"
	"github.com/BruksfildServices01/production-board/internal/domain/profile"
	"github.com/BruksfildServices01/production-board/internal/handlers"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/infra/generative"
	"github.com/BruksfildServices01/production-board/internal/infra/mailer"
	"github.com/BruksfildServices01/production-board/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/production-board/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/production-board/internal/usecase/auth"
	ucBoard "github.com/BruksfildServices01/production-board/internal/usecase/board"
	ucCalendar "github.com/BruksfildServices01/production-board/internal/usecase/calendar"
	ucClient "github.com/BruksfildServices01/production-board/internal/usecase/client"
	ucProject "github.com/BruksfildServices01/production-board/internal/usecase/project"
	ucUser "github.com/BruksfildServices01/production-board/internal/usecase/user"
	"github.com/BruksfildServices01/production-board/internal/usecase/workspace"
)

// Deps are the singletons built in main. Tests pass in-memory versions.
type Deps struct {
	Config *config.Config

	Boards       board.Repository
	Clients      client.Repository
	Profiles     profile.Repository
	Appointments appointment.Repository
	AuditLogs    audit.Reader
	AuditSink    audit.Sink

	Cache      *cache.Store
	Mailer     mailer.Mailer
	Generator  generative.Generator
	Thumbnails ucProject.ThumbnailProcessor
	CheckEmail ucAuth.EmailChecker
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	auditDispatcher := audit.NewDispatcher(d.AuditSink)
	tokens := auth.NewTokens(cfg.JWTSecret)
	override := access.Override{Email: cfg.SuperuserEmail}

	sessions := workspace.NewSessions(workspace.Repositories{
		Boards:       d.Boards,
		Clients:      d.Clients,
		Profiles:     d.Profiles,
		Appointments: d.Appointments,
	}, d.Cache)

	resetMailer := ucAuth.NewResetMailer(tokens, d.Mailer, cfg.AppBaseURL)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	authService := ucAuth.NewService(ucAuth.Deps{
		Profiles:   d.Profiles,
		Tokens:     tokens,
		Revoker:    d.Cache,
		Sessions:   sessions,
		Resets:     resetMailer,
		Override:   override,
		CheckEmail: d.CheckEmail,
		Audit:      auditDispatcher,
	})

	admin := ucUser.NewAdmin(d.Profiles, resetMailer, override, sessions, auditDispatcher)

	getBoardUC := ucBoard.NewGetBoard(sessions)
	dragEndUC := ucBoard.NewDragEnd(d.Boards, sessions, auditDispatcher)

	getMonthUC := ucCalendar.NewGetMonth(sessions, cfg.DefaultTimezone)

	projectUC := handlers.ProjectUseCases{
		Create:            ucProject.NewCreateProject(d.Boards, d.Clients, sessions, auditDispatcher),
		Update:            ucProject.NewUpdateProject(d.Boards, sessions, auditDispatcher),
		Delete:            ucProject.NewDeleteProject(d.Boards, sessions, auditDispatcher),
		Checklist:         ucProject.NewEditChecklist(d.Boards, sessions, auditDispatcher),
		ToggleResponsible: ucProject.NewToggleResponsible(d.Boards, sessions, auditDispatcher),
		Generate:          ucProject.NewGenerate(d.Boards, d.Generator, d.Thumbnails, sessions, auditDispatcher),
	}

	appointmentUC := handlers.AppointmentUseCases{
		Create:  ucAppointment.NewCreateAppointment(d.Appointments, sessions, auditDispatcher, cfg.DefaultTimezone),
		Update:  ucAppointment.NewUpdateAppointment(d.Appointments, sessions, auditDispatcher, cfg.DefaultTimezone),
		Delete:  ucAppointment.NewDeleteAppointment(d.Appointments, sessions, auditDispatcher),
		List:    ucAppointment.NewListAppointments(sessions, cfg.DefaultTimezone),
		Preview: ucAppointment.NewPreviewImport(d.Cache, cfg.DefaultTimezone),
		Confirm: ucAppointment.NewConfirmImport(d.Appointments, d.Cache, sessions, auditDispatcher),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(authService)
	boardHandler := handlers.NewBoardHandler(getBoardUC, dragEndUC)
	calendarHandler := handlers.NewCalendarHandler(getMonthUC)
	projectHandler := handlers.NewProjectHandler(projectUC)
	clientHandler := handlers.NewClientHandler(
		ucClient.NewListClients(sessions),
		ucClient.NewSaveClient(d.Clients, sessions, auditDispatcher),
		ucClient.NewDeleteClient(d.Clients, sessions, auditDispatcher),
	)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)
	userHandler := handlers.NewUserHandler(admin)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/password-reset", authHandler.RequestReset)
		api.POST("/auth/password-reset/confirm", authHandler.ConfirmReset)

		// ------------------------------
		// 🔐 SESSÃO (pendentes incluídos)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens, d.Cache, d.Profiles))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/auth/logout", authHandler.Logout)
		}

		// ------------------------------
		// 🔐 API PRIVADA (aprovados)
		// ------------------------------
		app := secured.Group("/")
		app.Use(middleware.ApprovedOnly())
		{
			app.GET("/board", boardHandler.Get)
			app.POST("/board/drag", boardHandler.Drag)

			app.GET("/calendar", calendarHandler.Month)

			// ------------------------------
			// PROJECTS
			// ------------------------------
			app.POST("/projects", projectHandler.Create)
			app.PATCH("/projects/:id", projectHandler.Update)
			app.DELETE("/projects/:id", projectHandler.Delete)
			app.POST("/projects/:id/checklist", projectHandler.Checklist)
			app.POST("/projects/:id/responsible/:userId", projectHandler.ToggleResponsible)
			app.POST("/projects/:id/generate/:kind", projectHandler.Generate)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			app.GET("/clients", clientHandler.List)
			app.POST("/clients", clientHandler.Create)
			app.PATCH("/clients/:id", clientHandler.Update)
			app.DELETE("/clients/:id", clientHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			app.GET("/appointments", appointmentHandler.List)
			app.POST("/appointments", appointmentHandler.Create)
			app.PATCH("/appointments/:id", appointmentHandler.Update)
			app.DELETE("/appointments/:id", appointmentHandler.Delete)
			app.POST("/appointments/import", appointmentHandler.ImportPreview)
			app.POST("/appointments/import/:importId/confirm", appointmentHandler.ImportConfirm)

			// ------------------------------
			// ADMIN
			// ------------------------------
			master := app.Group("/")
			master.Use(middleware.MasterOnly())
			{
				master.GET("/users", userHandler.List)
				master.POST("/users", userHandler.Create)
				master.PATCH("/users/:id", userHandler.Update)
				master.DELETE("/users/:id", userHandler.Delete)

				master.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
