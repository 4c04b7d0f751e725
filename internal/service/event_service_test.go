package service

import (
	"VaultKeeper/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestEventService_Record_EnrichesFromCipher(t *testing.T) {
	er := new(mockEventRepo)
	cr := new(mockCipherRepo)
	svc := NewEventService(er, cr)
	ctx := context.Background()
	cc := ClientContext{UserID: "actor", DeviceType: 9, IP: "10.0.0.1"}

	t.Run("existing org cipher overwrites event attribution", func(t *testing.T) {
		cipher := &model.Cipher{ID: "c1", OrganizationID: ptrStr("orgO")}
		cr.On("GetByID", mock.Anything, "c1").Return(cipher, nil).Once()
		er.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.OrgID != nil && *e.OrgID == "orgO" &&
				e.CipherID != nil && *e.CipherID == "c1" &&
				e.UserID == nil &&
				e.ActUserID != nil && *e.ActUserID == "actor" &&
				e.DeviceType != nil && *e.DeviceType == 9 &&
				e.IPAddress != nil && *e.IPAddress == "10.0.0.1"
		})).Return(nil).Once()

		err := svc.Record(ctx, model.EventCipherUpdated, nil, ptrStr("c1"), cc)
		assert.NoError(t, err)
		er.AssertExpectations(t)
		cr.AssertExpectations(t)
	})

	t.Run("deleted cipher keeps submitted id without context", func(t *testing.T) {
		cr.On("GetByID", mock.Anything, "gone").Return((*model.Cipher)(nil), gorm.ErrRecordNotFound).Once()
		er.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.CipherID != nil && *e.CipherID == "gone" &&
				e.OrgID == nil && e.UserID == nil
		})).Return(nil).Once()

		err := svc.Record(ctx, model.EventCipherDeleted, nil, ptrStr("gone"), cc)
		assert.NoError(t, err)
		er.AssertExpectations(t)
	})

	t.Run("no cipher id records as is", func(t *testing.T) {
		er.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.CipherID == nil && e.EventType == model.EventUserLoggedIn
		})).Return(nil).Once()

		err := svc.Record(ctx, model.EventUserLoggedIn, nil, nil, cc)
		assert.NoError(t, err)
		er.AssertExpectations(t)
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		er := new(mockEventRepo)
		cr := new(mockCipherRepo)
		svc := NewEventService(er, cr)
		cr.On("GetByID", mock.Anything, "c2").Return((*model.Cipher)(nil), errors.New("db down")).Once()

		err := svc.Record(ctx, model.EventCipherUpdated, nil, ptrStr("c2"), cc)
		assert.Error(t, err)
		er.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestEventService_Record_UsesProvidedDate(t *testing.T) {
	er := new(mockEventRepo)
	svc := NewEventService(er, new(mockCipherRepo))
	ctx := context.Background()

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	er.On("Upsert", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
		return e.EventDate.Equal(at)
	})).Return(nil).Once()

	err := svc.Record(ctx, model.EventUserLoggedIn, &at, nil, ClientContext{UserID: "u"})
	assert.NoError(t, err)
	er.AssertExpectations(t)
}

func TestEventService_Collect_SkipsMalformedItems(t *testing.T) {
	er := new(mockEventRepo)
	svc := NewEventService(er, new(mockCipherRepo))
	ctx := context.Background()

	// второй элемент с нечитаемой датой: первый и третий всё равно сохраняются
	er.On("Upsert", mock.Anything, mock.Anything).Return(nil).Times(2)

	err := svc.Collect(ctx, []Occurrence{
		{Type: model.EventUserLoggedIn, Date: "2024-05-01T12:00:00.000000Z"},
		{Type: model.EventUserLoggedIn, Date: "not-a-date"},
		{Type: model.EventUserLoggedIn, Date: "2024-05-01T12:01:00.000000Z"},
	}, ClientContext{UserID: "u"})

	assert.ErrorIs(t, err, ErrBadOccurrence)
	er.AssertExpectations(t)
}

func TestEventService_Collect_AllGood(t *testing.T) {
	er := new(mockEventRepo)
	svc := NewEventService(er, new(mockCipherRepo))
	ctx := context.Background()

	er.On("Upsert", mock.Anything, mock.Anything).Return(nil).Times(2)

	err := svc.Collect(ctx, []Occurrence{
		{Type: model.EventUserLoggedIn, Date: "2024-05-01T12:00:00.000000Z"},
		{Type: model.EventCipherClientViewed, Date: "2024-05-01T12:01:00Z"},
	}, ClientContext{UserID: "u"})

	assert.NoError(t, err)
	er.AssertExpectations(t)
}

func TestEventService_Collect_StoreFailureAborts(t *testing.T) {
	er := new(mockEventRepo)
	svc := NewEventService(er, new(mockCipherRepo))
	ctx := context.Background()

	er.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	err := svc.Collect(ctx, []Occurrence{
		{Type: model.EventUserLoggedIn, Date: "2024-05-01T12:00:00.000000Z"},
		{Type: model.EventUserLoggedIn, Date: "2024-05-01T12:01:00.000000Z"},
	}, ClientContext{UserID: "u"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadOccurrence)
	er.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestEventService_FindByOrganization_Serialized(t *testing.T) {
	er := new(mockEventRepo)
	svc := NewEventService(er, new(mockCipherRepo))
	ctx := context.Background()

	start := time.Now().Add(-time.Hour)
	end := time.Now()
	events := []model.Event{{
		ID:        "e1",
		EventType: model.EventOrganizationUpdated,
		OrgID:     ptrStr("orgO"),
		ActUserID: ptrStr("admin"),
		EventDate: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}}
	er.On("FindByOrganization", mock.Anything, "orgO", start, end).Return(events, nil).Once()

	out, err := svc.FindByOrganization(ctx, "orgO", start, end)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, model.EventOrganizationUpdated, out[0]["Type"])
	assert.Equal(t, ptrStr("orgO"), out[0]["OrganizationId"])
	assert.Equal(t, "2024-05-01T12:00:00.000000Z", out[0]["Date"])
	er.AssertExpectations(t)
}
