package service

import (
	"VaultKeeper/internal/model"
	"context"
	"encoding/json"
	"fmt"
)

// Serialize строит презентационный объект шифра для конкретного
// пользователя: папка и список коллекций зависят от того, кто смотрит.
func (s *CipherService) Serialize(ctx context.Context, viewerID string, c *model.Cipher) (map[string]any, error) {
	attachments, err := s.attachments.FindByCipher(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	attachmentsJSON := make([]map[string]any, 0, len(attachments))
	for _, a := range attachments {
		attachmentsJSON = append(attachmentsJSON, map[string]any{
			"Id":       a.ID,
			"FileName": a.FileName,
			"Size":     a.FileSize,
			"Object":   "attachment",
		})
	}

	folderID, err := s.ciphers.GetFolderID(ctx, viewerID, c.ID)
	if err != nil {
		return nil, err
	}
	collectionIDs, err := s.ciphers.GetCollectionIDs(ctx, viewerID, c.ID)
	if err != nil {
		return nil, err
	}

	var fieldsJSON any
	if c.Fields != nil {
		if err := json.Unmarshal([]byte(*c.Fields), &fieldsJSON); err != nil {
			return nil, fmt.Errorf("parse cipher fields: %w", err)
		}
	}

	var dataJSON any
	if err := json.Unmarshal([]byte(c.Data), &dataJSON); err != nil {
		return nil, fmt.Errorf("parse cipher data: %w", err)
	}
	dataJSON = applyLegacyURI(c.Type, dataJSON)

	item := map[string]any{
		"Id":                  c.ID,
		"Type":                c.Type,
		"RevisionDate":        FormatDate(c.UpdatedAt),
		"FolderId":            folderID,
		"Favorite":            c.Favorite,
		"OrganizationId":      c.OrganizationID,
		"Attachments":         attachmentsJSON,
		"OrganizationUseTotp": false,
		"CollectionIds":       collectionIDs,

		"Name":   c.Name,
		"Notes":  c.Notes,
		"Fields": fieldsJSON,

		"Data": dataJSON,

		"Object": "cipher",
		"Edit":   true, // реальные права на запись здесь не считаются
	}
	if alias := c.TypeAlias(); alias != "" {
		item[alias] = dataJSON
	}
	return item, nil
}

// applyLegacyURI — шим совместимости для старых клиентов: у Login-шифров
// со списком Uris первый uri дублируется в единственное поле Uri.
// Применяется только на границе сериализации; когда клиенты перестанут
// зависеть от поля, шим удаляется в этом одном месте.
func applyLegacyURI(cipherType int, data any) any {
	if cipherType != model.CipherTypeLogin {
		return data
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data
	}
	uris, ok := m["Uris"].([]any)
	if !ok {
		return data
	}
	var uri any
	if len(uris) > 0 {
		if first, ok := uris[0].(map[string]any); ok {
			uri = first["uri"]
		}
	}
	m["Uri"] = uri
	return m
}

// SerializeEvent строит презентационный объект записи аудита.
func SerializeEvent(e *model.Event) map[string]any {
	return map[string]any{
		"Type":               e.EventType,
		"UserId":             e.UserID,
		"OrganizationId":     e.OrgID,
		"CipherId":           e.CipherID,
		"CollectionId":       e.CollectionID,
		"GroupId":            e.GroupID,
		"OrganizationUserId": e.OrgUserID,
		"ActingUserId":       e.ActUserID,
		"Date":               FormatDate(e.EventDate),
		"DeviceType":         e.DeviceType,
		"IpAddress":          e.IPAddress,
	}
}
