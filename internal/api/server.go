package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/garage-api/docs"
	v1 "github.com/vietanh2810/garage-api/internal/api/handler/v1"
	"github.com/vietanh2810/garage-api/internal/api/middleware"
	"github.com/vietanh2810/garage-api/internal/config"
	"github.com/vietanh2810/garage-api/internal/repository"
	"github.com/vietanh2810/garage-api/internal/repository/dao"
	"github.com/vietanh2810/garage-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	teamHandler := s.initTeamHandler(db)
	partHandler := s.initPartHandler(db)
	carHandler := s.initCarHandler(db)
	simulationHandler := s.initSimulationHandler(db)
	s.MountHandlers(authHandler, userHandler, teamHandler, partHandler, carHandler, simulationHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTeamHandler(db *gorm.DB) *v1.TeamHandler {
	ledgerRepo := repository.NewLedgerRepository(dao.NewTeamDAO(db))
	svc := service.NewLedgerService(ledgerRepo)

	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))
	inventorySvc := service.NewInventoryService(inventoryRepo)

	catalogRepo := repository.NewCatalogRepository(dao.NewPartDAO(db))
	purchaseRepo := repository.NewPurchaseRepository(dao.NewPurchaseDAO(db))
	purchaseSvc := service.NewPurchaseService(purchaseRepo, catalogRepo, ledgerRepo)

	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTeamHandler(svc, inventorySvc, purchaseSvc, uSvc)

	return handler
}

func (s *Server) initPartHandler(db *gorm.DB) *v1.PartHandler {
	catalogRepo := repository.NewCatalogRepository(dao.NewPartDAO(db))
	svc := service.NewCatalogService(catalogRepo)

	ledgerRepo := repository.NewLedgerRepository(dao.NewTeamDAO(db))
	purchaseRepo := repository.NewPurchaseRepository(dao.NewPurchaseDAO(db))
	purchaseSvc := service.NewPurchaseService(purchaseRepo, catalogRepo, ledgerRepo)

	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewPartHandler(svc, purchaseSvc, uSvc)

	return handler
}

func (s *Server) initCarHandler(db *gorm.DB) *v1.CarHandler {
	assemblyRepo := repository.NewAssemblyRepository(dao.NewCarDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewPartDAO(db))
	inventoryRepo := repository.NewInventoryRepository(dao.NewInventoryDAO(db))
	svc := service.NewAssemblyService(assemblyRepo, catalogRepo, inventoryRepo)

	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewCarHandler(svc, uSvc)

	return handler
}

func (s *Server) initSimulationHandler(db *gorm.DB) *v1.SimulationHandler {
	assemblyRepo := repository.NewAssemblyRepository(dao.NewCarDAO(db))
	ledgerRepo := repository.NewLedgerRepository(dao.NewTeamDAO(db))
	svc := service.NewSimulationService(assemblyRepo, ledgerRepo)
	handler := v1.NewSimulationHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	teamHandler *v1.TeamHandler,
	partHandler *v1.PartHandler,
	carHandler *v1.CarHandler,
	simulationHandler *v1.SimulationHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	teams := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		teams.POST("/teams", teamHandler.HandleCreateTeam)
		teams.GET("/teams/:teamID/budget", teamHandler.HandleGetBudget)
		teams.GET("/teams/:teamID/contributions", teamHandler.HandleGetContributions)
		teams.GET("/teams/:teamID/inventory", teamHandler.HandleGetInventory)
		teams.GET("/teams/:teamID/purchases", teamHandler.HandleGetPurchases)
		teams.POST("/sponsors", teamHandler.HandleCreateSponsor)
		teams.POST("/contributions", teamHandler.HandleCreateContribution)
	}

	parts := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		parts.GET("/parts", partHandler.HandleListParts)
		parts.GET("/parts/:partID", partHandler.HandleGetPart)
		parts.POST("/parts", partHandler.HandleCreatePart)
		parts.PUT("/parts/:partID", partHandler.HandleUpdatePart)
		parts.POST("/parts/:partID/restock", partHandler.HandleRestockPart)
		parts.DELETE("/parts/:partID", partHandler.HandleDeletePart)
		parts.POST("/purchases", partHandler.HandlePurchasePart)
	}

	cars := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		cars.GET("/teams/:teamID/cars", carHandler.HandleGetTeamCars)
		cars.POST("/cars/:carID/parts", carHandler.HandleInstallPart)
		cars.PUT("/cars/:carID/parts", carHandler.HandleReplacePart)
		cars.DELETE("/cars/:carID/parts", carHandler.HandleUninstallPart)
		cars.GET("/cars/:carID/parts/:partID/validate", carHandler.HandleValidatePart)
		cars.GET("/cars/:carID/configuration", carHandler.HandleGetConfiguration)
		cars.GET("/cars/:carID/stats", carHandler.HandleGetCarStats)
	}

	simulation := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		simulation.GET("/simulation/roster", simulationHandler.HandleGetRoster)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Garage API"
	docs.SwaggerInfo.Description = "Team economy and car assembly API for the racing league."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
