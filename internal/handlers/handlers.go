package handlers

import (
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	cipherService *service.CipherService,
	folderService *service.FolderService,
	collectionService *service.CollectionService,
	orgService *service.OrgService,
	eventService *service.EventService,
	accessService *service.AccessService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	cipherHandler := NewCipherHandler(cipherService, collectionService, accessService, eventService, logger)
	folderHandler := NewFolderHandler(folderService, cipherService, logger)
	orgHandler := NewOrgHandler(cipherService, collectionService, orgService, eventService, logger)
	eventHandler := NewEventHandler(eventService, accessService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// Cipher routes
	r.Get("/api/ciphers", cipherHandler.List)
	r.Post("/api/ciphers", cipherHandler.Create)
	r.Post("/api/ciphers/purge", cipherHandler.Purge)
	r.Get("/api/ciphers/{cipherId}", cipherHandler.Get)
	r.Put("/api/ciphers/{cipherId}", cipherHandler.Update)
	r.Delete("/api/ciphers/{cipherId}", cipherHandler.Delete)
	r.Put("/api/ciphers/{cipherId}/folder", cipherHandler.MoveToFolder)
	r.Put("/api/ciphers/{cipherId}/collections/{collectionId}", cipherHandler.LinkCollection)
	r.Delete("/api/ciphers/{cipherId}/collections/{collectionId}", cipherHandler.UnlinkCollection)
	r.Post("/api/ciphers/{cipherId}/attachment", cipherHandler.AddAttachment)
	r.Delete("/api/ciphers/{cipherId}/attachments", cipherHandler.DeleteAttachments)

	// Folder routes
	r.Get("/api/folders", folderHandler.List)
	r.Post("/api/folders", folderHandler.Create)
	r.Get("/api/folders/{folderId}/ciphers", folderHandler.Ciphers)

	// Organization routes
	r.Get("/api/organizations/{orgId}/ciphers", orgHandler.Ciphers)
	r.Get("/api/organizations/{orgId}/collections", orgHandler.Collections)
	r.Post("/api/organizations/{orgId}/collections", orgHandler.CreateCollection)
	r.Put("/api/organizations/{orgId}/collections/{collectionId}/users/{userId}", orgHandler.AssignCollectionUser)
	r.Put("/api/organizations/{orgId}/users/{userId}", orgHandler.SetMembership)

	// Event routes
	r.Get("/api/organizations/{orgId}/events", eventHandler.OrgEvents)
	r.Get("/api/ciphers/{cipherId}/events", eventHandler.CipherEvents)
	r.Post("/events/collect", eventHandler.Collect)

	return &Handler{Router: r}
}
