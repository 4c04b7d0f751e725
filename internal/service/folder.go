package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
)

// FolderService — личные папки пользователя.
type FolderService struct {
	folders repo.FolderRepository
}

// NewFolderService создаёт сервис папок.
func NewFolderService(f repo.FolderRepository) *FolderService {
	return &FolderService{folders: f}
}

// Create создаёт папку вызывающего.
func (s *FolderService) Create(ctx context.Context, userID, name string) (*model.Folder, error) {
	f := model.NewFolder(userID, name)
	if err := s.folders.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List — папки вызывающего.
func (s *FolderService) List(ctx context.Context, userID string) ([]model.Folder, error) {
	return s.folders.ListByUser(ctx, userID)
}

// SerializeFolder — презентационный объект папки.
func SerializeFolder(f *model.Folder) map[string]any {
	return map[string]any{
		"Id":           f.ID,
		"Name":         f.Name,
		"RevisionDate": FormatDate(f.UpdatedAt),
		"Object":       "folder",
	}
}
