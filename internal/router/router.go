package router

import (
	"time"

	commonMiddleware "github.com/PetA199003/GBU-Management/common/middleware"
	"github.com/PetA199003/GBU-Management/common/response"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/handler"
	"github.com/PetA199003/GBU-Management/internal/middleware"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// NewApp 创建 Fiber 应用并注册路由
func NewApp(svcCtx *svc.ServiceContext) *fiber.App {
	server := svcCtx.Config.Server
	app := fiber.New(fiber.Config{
		AppName:      svcCtx.Config.App.Name,
		ReadTimeout:  time.Duration(server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(server.WriteTimeout) * time.Second,
		BodyLimit:    server.BodyLimit << 20,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: response.ErrorHandler,
	})
	Setup(app, svcCtx)
	return app
}

// Setup 设置路由
func Setup(app *fiber.App, svcCtx *svc.ServiceContext) {
	ps := auth.NewPermissionService(svcCtx.DB)
	adminOnly := middleware.RoleMiddleware(model.RoleAdmin)

	// 全局中间件
	app.Use(
		commonMiddleware.CORS(svcCtx.Config.GBU.AllowOrigins),
		commonMiddleware.RequestID(),
		commonMiddleware.Logger(),
		commonMiddleware.Recover(),
		middleware.ClientIP(),
	)

	authH := handler.NewAuthHandler(svcCtx)
	userH := handler.NewUserHandler(svcCtx)
	projectH := handler.NewProjectHandler(svcCtx)
	bereichH := handler.NewBereichHandler(svcCtx)
	gbuH := handler.NewGBUHandler(svcCtx)
	catalogH := handler.NewCatalogHandler(svcCtx)
	participantH := handler.NewParticipantHandler(svcCtx)
	unterweisungH := handler.NewUnterweisungHandler(svcCtx)
	reportH := handler.NewReportHandler(svcCtx)
	systemH := handler.NewSystemHandler(svcCtx)

	api := app.Group("/api")

	// ========== 公开路由 ==========
	api.Get("/health", systemH.Health)
	api.Post("/auth/login", authH.Login)

	// ========== 需要认证的路由 ==========
	authed := api.Group("", middleware.AuthMiddleware(ps))

	ag := authed.Group("/auth")
	ag.Post("/logout", authH.Logout)
	ag.Get("/me", authH.Me)
	ag.Post("/change-password", authH.ChangePassword)

	// 用户管理
	u := authed.Group("/users")
	u.Get("", adminOnly, userH.List)
	u.Get("/by-role/:role", userH.ByRole)
	u.Get("/:id", userH.Get)
	u.Post("", adminOnly, userH.Create)
	u.Put("/:id", adminOnly, userH.Update)
	u.Delete("/:id", adminOnly, userH.Delete)

	// 项目
	p := authed.Group("/projects")
	p.Get("", projectH.List)
	p.Post("", projectH.Create)
	p.Get("/:id", projectH.Get)
	p.Put("/:id", projectH.Update)
	p.Delete("/:id", projectH.Delete)
	p.Post("/:id/assign", projectH.Assign)
	p.Get("/:id/assignments", projectH.Assignments)
	p.Delete("/:id/unassign/:user_id", projectH.Unassign)
	p.Get("/:id/auto-select", projectH.AutoSelect)
	p.Get("/:id/hazards", projectH.Hazards)
	p.Put("/:id/hazards", projectH.SetHazards)

	// 区域
	b := authed.Group("/bereiche")
	b.Get("", bereichH.List)
	b.Post("", bereichH.Create)
	b.Get("/project/:project_id/assignments", bereichH.ProjectAssignments)
	b.Post("/project/:project_id/assign", bereichH.Assign)
	b.Get("/user/:user_id/assignments", bereichH.UserAssignments)
	b.Get("/:id", bereichH.Get)
	b.Put("/:id", bereichH.Update)
	b.Delete("/:id", bereichH.Delete)

	// 模板与危害条目
	g := authed.Group("/gbu")
	g.Get("/templates", gbuH.ListTemplates)
	g.Post("/templates", gbuH.CreateTemplate)
	g.Get("/templates/:id", gbuH.GetTemplate)
	g.Put("/templates/:id", gbuH.UpdateTemplate)
	g.Delete("/templates/:id", gbuH.DeleteTemplate)
	g.Post("/gefaehrdungen", gbuH.CreateGefaehrdung)
	g.Put("/gefaehrdungen/:id", gbuH.UpdateGefaehrdung)
	g.Delete("/gefaehrdungen/:id", gbuH.DeleteGefaehrdung)
	g.Get("/project/:id/gbus", gbuH.ProjectGBUs)
	g.Post("/project/:id/add-template", gbuH.AddTemplate)
	g.Post("/project/:id/copy-template/:template_id", gbuH.CopyTemplate)

	// 风险目录
	cat := authed.Group("/catalog")
	cat.Get("/risk-matrix", catalogH.RiskMatrix)
	cat.Get("/assessments", catalogH.ListAssessments)
	cat.Post("/assessments", catalogH.CreateAssessment)
	cat.Get("/assessments/:id", catalogH.GetAssessment)
	cat.Put("/assessments/:id", catalogH.UpdateAssessment)
	cat.Delete("/assessments/:id", catalogH.DeleteAssessment)
	cat.Get("/hazards", catalogH.ListHazards)
	cat.Post("/hazards", catalogH.SaveHazard)
	cat.Get("/hazards/:id", catalogH.GetHazard)
	cat.Put("/hazards/:id", catalogH.SaveHazard)
	cat.Delete("/hazards/:id", catalogH.DeleteHazard)
	cat.Get("/measures", catalogH.ListMeasures)
	cat.Post("/measures", catalogH.SaveMeasure)
	cat.Put("/measures/:id", catalogH.SaveMeasure)
	cat.Delete("/measures/:id", catalogH.DeleteMeasure)
	cat.Get("/criteria", catalogH.ListCriteria)
	cat.Post("/criteria", catalogH.SaveCriteria)
	cat.Put("/criteria/:id", catalogH.SaveCriteria)
	cat.Delete("/criteria/:id", catalogH.DeleteCriteria)

	// 参与者
	pa := authed.Group("/participants")
	pa.Get("/project/:id", participantH.List)
	pa.Get("/project/:id/stats", participantH.Stats)
	pa.Post("/project/:id/import", participantH.Import)
	pa.Post("/project/:id/import-csv", participantH.Import)
	pa.Post("", participantH.Create)
	pa.Put("/:id", participantH.Update)
	pa.Delete("/:id", participantH.Delete)
	pa.Post("/:id/sign", participantH.Sign)
	pa.Post("/:id/mark-analog-signed", participantH.MarkAnalogSigned)
	pa.Post("/:id/reset-signature", participantH.ResetSignature)

	// 安全交底
	uw := authed.Group("/unterweisung")
	uw.Get("/project/:id", unterweisungH.ListByProject)
	uw.Post("/project/:id/generate", unterweisungH.Generate)
	uw.Post("", unterweisungH.Create)
	uw.Get("/:id", unterweisungH.Get)
	uw.Put("/:id", unterweisungH.Update)
	uw.Delete("/:id", unterweisungH.Delete)

	// 导出
	authed.Get("/pdf/project/:id/gbu", reportH.GBUPDF())
	authed.Get("/pdf/project/:id/participants", reportH.ParticipantsPDF())
	authed.Get("/pdf/unterweisung/:id", reportH.UnterweisungPDF())
	authed.Get("/export/project/:id/gbu.xlsx", reportH.GBUXLSX())

	// 仪表盘与审计
	authed.Get("/dashboard", systemH.Dashboard)
	authed.Get("/audit", adminOnly, systemH.AuditList)

	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route nicht gefunden")
	})
}
