package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CipherService владеет жизненным циклом шифра: создание, сохранение,
// каскадное удаление и перенос между папками. Проверки доступа
// выполняются здесь же через AccessService.
type CipherService struct {
	ciphers     repo.CipherRepository
	folders     repo.FolderRepository
	attachments repo.AttachmentRepository
	access      *AccessService
}

// NewCipherService создаёт сервис шифров.
func NewCipherService(c repo.CipherRepository, f repo.FolderRepository, a repo.AttachmentRepository, access *AccessService) *CipherService {
	return &CipherService{ciphers: c, folders: f, attachments: a, access: access}
}

// CreateCipherInput — данные нового шифра. Ровно одно из полей
// UserID/OrgID должно быть заполнено.
type CreateCipherInput struct {
	UserID   *string
	OrgID    *string
	Type     int
	Name     string
	Notes    *string
	Fields   *string
	Data     string
	Favorite bool
}

// Create создаёт и сохраняет шифр. Владелец назначается один раз
// и далее не меняется.
func (s *CipherService) Create(ctx context.Context, in CreateCipherInput) (*model.Cipher, error) {
	c, err := model.NewCipher(in.Type, in.Name, in.UserID, in.OrgID)
	if err != nil {
		return nil, err
	}
	c.Notes = in.Notes
	c.Fields = in.Fields
	c.Favorite = in.Favorite
	if in.Data != "" {
		c.Data = in.Data
	}
	if err := s.ciphers.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cipher: %w", err)
	}
	return c, nil
}

// GetByID возвращает шифр по uuid без проверки доступа —
// решение о доступе принимает вызывающий через AccessService.
func (s *CipherService) GetByID(ctx context.Context, id string) (*model.Cipher, error) {
	return s.ciphers.GetByID(ctx, id)
}

// Update сохраняет изменённый шифр от имени вызывающего.
func (s *CipherService) Update(ctx context.Context, callerID string, c *model.Cipher) error {
	ok, err := s.access.CanWrite(ctx, callerID, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return s.ciphers.Save(ctx, c)
}

// Delete удаляет шифр вместе с зависимыми записями. Порядок и
// транзакционность — в репозитории: строка шифра не удаляется,
// пока существуют ссылающиеся на неё привязки.
func (s *CipherService) Delete(ctx context.Context, callerID, cipherID string) error {
	c, err := s.ciphers.GetByID(ctx, cipherID)
	if err != nil {
		return err
	}
	ok, err := s.access.CanWrite(ctx, callerID, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return s.ciphers.Delete(ctx, c.ID)
}

// ListByOrg — все шифры организации. Доступно её Owner/Admin.
func (s *CipherService) ListByOrg(ctx context.Context, callerID, orgID string) ([]model.Cipher, error) {
	admin, err := s.access.IsAdminOrOwner(ctx, callerID, orgID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrPermissionDenied
	}
	return s.ciphers.FindByOrg(ctx, orgID)
}

// ListByFolder — шифры в папке. Папка должна принадлежать вызывающему.
func (s *CipherService) ListByFolder(ctx context.Context, callerID, folderID string) ([]model.Cipher, error) {
	f, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if f.UserID != callerID {
		return nil, ErrPermissionDenied
	}
	return s.ciphers.FindByFolder(ctx, folderID)
}

// PurgeOwned удаляет все личные шифры вызывающего, каждый — полным
// каскадом. Возвращает число удалённых шифров.
func (s *CipherService) PurgeOwned(ctx context.Context, callerID string) (int, error) {
	owned, err := s.ciphers.FindOwnedByUser(ctx, callerID)
	if err != nil {
		return 0, err
	}
	for i := range owned {
		if err := s.ciphers.Delete(ctx, owned[i].ID); err != nil {
			return i, err
		}
	}
	return len(owned), nil
}

// AddAttachment регистрирует метаданные вложения шифра. Само содержимое
// хранится вне сервиса, здесь только имя и размер.
func (s *CipherService) AddAttachment(ctx context.Context, callerID, cipherID, fileName string, fileSize int64) (*model.Attachment, error) {
	c, err := s.ciphers.GetByID(ctx, cipherID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.CanWrite(ctx, callerID, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	a := &model.Attachment{ID: uuid.NewString(), CipherID: c.ID, FileName: fileName, FileSize: fileSize}
	if err := s.attachments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAttachments удаляет метаданные всех вложений шифра.
func (s *CipherService) DeleteAttachments(ctx context.Context, callerID, cipherID string) error {
	c, err := s.ciphers.GetByID(ctx, cipherID)
	if err != nil {
		return err
	}
	ok, err := s.access.CanWrite(ctx, callerID, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return s.attachments.DeleteAllByCipher(ctx, c.ID)
}

// MoveToFolder переносит шифр в папку пользователя (folderID == nil —
// убирает из папки). Папка должна существовать и принадлежать
// вызывающему; шифр должен быть ему доступен.
func (s *CipherService) MoveToFolder(ctx context.Context, callerID, cipherID string, folderID *string) error {
	c, err := s.ciphers.GetByID(ctx, cipherID)
	if err != nil {
		return err
	}
	ok, err := s.access.CanRead(ctx, callerID, c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	if folderID != nil {
		f, err := s.folders.GetByID(ctx, *folderID)
		if err != nil {
			return err
		}
		if f.UserID != callerID {
			return ErrPermissionDenied
		}
	}
	return s.folders.MoveCipher(ctx, callerID, c.ID, folderID)
}
