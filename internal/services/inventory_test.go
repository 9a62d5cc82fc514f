package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryListSortedBySKU(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInventoryService(conn)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	seedProduct(t, conn, "SKU003", 1, 1)
	seedProduct(t, conn, "SKU001", 2, 2)
	seedProduct(t, conn, "SKU002", 3, 3)

	list, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "SKU001", list[0].SKU)
	assert.Equal(t, "SKU002", list[1].SKU)
	assert.Equal(t, "SKU003", list[2].SKU)

	// idempotent read
	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestInventoryUpsert(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInventoryService(conn)

	created, err := svc.Upsert(context.Background(), "SKU001", "widget", 10, 5)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "widget", created.Description)
	assert.Equal(t, 5, created.Stock)

	// same sku updates in place, id stays stable
	updated, err := svc.Upsert(context.Background(), "SKU001", "better widget", 12, 9)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "better widget", updated.Description)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, 9, updated.Stock)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestInventoryPatch(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInventoryService(conn)
	seedProduct(t, conn, "SKU001", 10, 4)

	stock := 25
	p, err := svc.Patch(context.Background(), "SKU001", ProductPatch{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 25, p.Stock)
	assert.Equal(t, 4.0, p.Price)

	desc := "renamed"
	price := 9.99
	p, err = svc.Patch(context.Background(), "SKU001", ProductPatch{Description: &desc, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "renamed", p.Description)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 25, p.Stock)
}

func TestInventoryPatchEmpty(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInventoryService(conn)
	seedProduct(t, conn, "SKU001", 10, 4)

	_, err := svc.Patch(context.Background(), "SKU001", ProductPatch{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyPatch))
	assert.Equal(t, 10, stockOf(t, conn, "SKU001"))
}

func TestInventoryPatchNotFound(t *testing.T) {
	conn := openTestDB(t)
	svc := NewInventoryService(conn)

	stock := 1
	_, err := svc.Patch(context.Background(), "MISSING", ProductPatch{Stock: &stock})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductNotFound))
	assert.True(t, IsBusinessError(err))
}
