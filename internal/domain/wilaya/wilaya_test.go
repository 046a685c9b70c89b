package wilaya_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/luxa-shop/internal/apperr"
	"github.com/example/luxa-shop/internal/domain/wilaya"
	"github.com/example/luxa-shop/internal/infrastructure/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() *mocks.MockWilayaRepository {
	return mocks.NewMockWilayaRepository(
		&wilaya.Wilaya{ID: 31, Code: "31", Name: "Oran", ShippingBureau: 500, ShippingDomicile: 800, IsActive: true},
		&wilaya.Wilaya{ID: 16, Code: "16", Name: "Alger", ShippingBureau: 400, ShippingDomicile: 650, IsActive: true},
		&wilaya.Wilaya{ID: 11, Code: "11", Name: "Tamanrasset", ShippingBureau: 900, ShippingDomicile: 1400, IsActive: false},
	)
}

func TestService_ListActive(t *testing.T) {
	svc := wilaya.NewService(newRepo())

	ws, err := svc.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "16", ws[0].Code)
	assert.Equal(t, "31", ws[1].Code)
}

func TestService_Names(t *testing.T) {
	t.Run("includes inactive regions", func(t *testing.T) {
		svc := wilaya.NewService(newRepo())

		names, err := svc.Names(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[int]string{11: "Tamanrasset", 16: "Alger", 31: "Oran"}, names)
	})

	t.Run("store failure is remote", func(t *testing.T) {
		repo := newRepo()
		repo.Err = errors.New("connection reset")
		svc := wilaya.NewService(repo)

		_, err := svc.Names(context.Background())

		assert.ErrorIs(t, err, apperr.ErrRemote)
	})
}

func TestService_Get(t *testing.T) {
	svc := wilaya.NewService(newRepo())

	w, err := svc.Get(context.Background(), 16)
	require.NoError(t, err)
	assert.Equal(t, "Alger", w.Name)

	_, err = svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_UpdateRates(t *testing.T) {
	repo := newRepo()
	svc := wilaya.NewService(repo)

	w, err := svc.UpdateRates(context.Background(), 16, 450, 700)
	require.NoError(t, err)
	assert.Equal(t, 450, w.ShippingBureau)
	assert.Equal(t, 700, w.ShippingDomicile)

	_, err = svc.UpdateRates(context.Background(), 16, -1, 700)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	repo.Err = errors.New("timeout")
	_, err = svc.UpdateRates(context.Background(), 16, 450, 700)
	assert.ErrorIs(t, err, apperr.ErrRemote)
}
