package main

import (
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/handlers"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	// Репозитории
	userRepo := repo.NewUserRepository(gormDB)
	cipherRepo := repo.NewCipherRepository(gormDB)
	folderRepo := repo.NewFolderRepository(gormDB)
	membershipRepo := repo.NewMembershipRepository(gormDB)
	collectionRepo := repo.NewCollectionRepository(gormDB)
	attachmentRepo := repo.NewAttachmentRepository(gormDB)
	eventRepo := repo.NewEventRepository(gormDB)

	// Сервисы
	userService := service.NewUserService(userRepo)
	accessService := service.NewAccessService(membershipRepo, cipherRepo)
	cipherService := service.NewCipherService(cipherRepo, folderRepo, attachmentRepo, accessService)
	folderService := service.NewFolderService(folderRepo)
	collectionService := service.NewCollectionService(collectionRepo, cipherRepo, accessService)
	orgService := service.NewOrgService(membershipRepo, accessService)
	eventService := service.NewEventService(eventRepo, cipherRepo)

	h := handlers.NewHandler(userService, cipherService, folderService, collectionService, orgService, eventService, accessService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
