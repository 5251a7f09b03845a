package character

import (
	"context"
	"testing"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lorekeep/lorekeep/core"
	mock_character "github.com/lorekeep/lorekeep/x/character/mock"
)

func TestServiceCreateStampsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, character core.Character) (core.Character, error) {
			return character, nil
		})

	service := NewService(mockRepo)

	created, err := service.Create(context.Background(), core.Character{
		UserID:      "owner",
		Name:        "Elara",
		Role:        "Protagonist",
		Description: "A ranger",
	})
	if assert.NoError(t, err) {
		_, err := xid.FromString(created.ID)
		assert.NoError(t, err)
	}
}

func TestServiceCreateRejectsPresetID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_character.NewMockRepository(ctrl)

	service := NewService(mockRepo)

	_, err := service.Create(context.Background(), core.Character{
		ID:          xid.New().String(),
		UserID:      "owner",
		Name:        "Elara",
		Role:        "Protagonist",
		Description: "A ranger",
	})
	assert.ErrorAs(t, err, &core.ErrorValidation{})
}

func TestServiceRejectsMalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the repository must never see a syntactically invalid id
	mockRepo := mock_character.NewMockRepository(ctrl)

	service := NewService(mockRepo)

	_, err := service.Update(context.Background(), "owner", "not-a-valid-id", map[string]any{"name": "x"})
	assert.ErrorAs(t, err, &core.ErrorMalformedID{})

	_, err = service.Delete(context.Background(), "owner", "not-a-valid-id")
	assert.ErrorAs(t, err, &core.ErrorMalformedID{})
}
