package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei/edushield/internal/app/models/dto"
)

func TestCreateParent_DuplicateCardIsAdvisoryOnly(t *testing.T) {
	store := &fakeParentStore{}
	svc := NewParentService(store)

	first, dup, err := svc.CreateParent(context.Background(), &dto.CreateParentRequest{
		FullName:   "Kofi Mensah",
		Phone:      "0244000000",
		CardNumber: "GHA-000111222-3",
	})
	require.NoError(t, err)
	assert.False(t, dup)
	assert.NotZero(t, first.ID)

	// Same card on a second parent warns but still writes
	second, dup, err := svc.CreateParent(context.Background(), &dto.CreateParentRequest{
		FullName:   "Akos Mensah",
		Phone:      "0244111111",
		CardNumber: "GHA-000111222-3",
	})
	require.NoError(t, err)
	assert.True(t, dup)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateParent_EmptyOptionalFieldsStayNil(t *testing.T) {
	store := &fakeParentStore{}
	svc := NewParentService(store)

	parent, dup, err := svc.CreateParent(context.Background(), &dto.CreateParentRequest{
		FullName: "Kofi Mensah",
		Phone:    "0244000000",
	})
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Nil(t, parent.CardNumber)
	assert.Nil(t, parent.Address)
}
