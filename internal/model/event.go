package model

import (
	"time"

	"github.com/google/uuid"
)

// Коды событий аудита. Значения совпадают с кодами клиентского протокола.
// Групповые коды (14xx) намеренно отсутствуют: группы не поддерживаются,
// и событие с пустым group_uuid ломает веб-клиент.
const (
	EventUserLoggedIn                          = 1000
	EventUserChangedPassword                   = 1001
	EventUserUpdated2fa                        = 1002
	EventUserDisabled2fa                       = 1003
	EventUserRecovered2fa                      = 1004
	EventUserFailedLogIn                       = 1005
	EventUserFailedLogIn2fa                    = 1006
	EventUserExportedVault                     = 1007
	EventCipherCreated                         = 1100
	EventCipherUpdated                         = 1101
	EventCipherDeleted                         = 1102
	EventCipherAttachmentCreated               = 1103
	EventCipherAttachmentDeleted               = 1104
	EventCipherShared                          = 1105
	EventCipherUpdatedCollections              = 1106
	EventCipherClientViewed                    = 1107
	EventCipherClientToggledPasswordVisible    = 1108
	EventCipherClientToggledHiddenFieldVisible = 1109
	EventCipherClientToggledCardCodeVisible    = 1110
	EventCipherClientCopiedPassword            = 1111
	EventCipherClientCopiedHiddenField         = 1112
	EventCipherClientCopiedCardCode            = 1113
	EventCipherClientAutofilled                = 1114
	EventCollectionCreated                     = 1300
	EventCollectionUpdated                     = 1301
	EventCollectionDeleted                     = 1302
	EventOrgUserInvited                        = 1500
	EventOrgUserConfirmed                      = 1501
	EventOrgUserUpdated                        = 1502
	EventOrgUserRemoved                        = 1503
	EventOrgUserUpdatedGroups                  = 1504
	EventOrganizationUpdated                   = 1600
	EventOrganizationPurgedVault               = 1601
)

// Event — запись аудита. После записи не изменяется; повторная отправка
// с тем же uuid перезаписывает запись тем же содержимым (идемпотентный
// upsert), других обновлений бизнес-логика не делает.
type Event struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	EventType int    `gorm:"not null"`

	UserID       *string `gorm:"type:uuid;index"`
	OrgID        *string `gorm:"type:uuid;index"`
	CipherID     *string `gorm:"type:uuid;index"`
	CollectionID *string `gorm:"type:uuid"`
	GroupID      *string `gorm:"type:uuid"` // зарезервировано, всегда nil
	OrgUserID    *string `gorm:"type:uuid"`
	ActUserID    *string `gorm:"type:uuid"`

	DeviceType *int
	IPAddress  *string

	EventDate time.Time `gorm:"not null;index"`
}

// NewEvent создаёт событие с новым uuid. Если дата не задана,
// берётся текущее время.
func NewEvent(eventType int, eventDate *time.Time) *Event {
	date := time.Now().UTC()
	if eventDate != nil {
		date = *eventDate
	}
	return &Event{
		ID:        uuid.NewString(),
		EventType: eventType,
		EventDate: date,
	}
}
