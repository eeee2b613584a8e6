package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidService(t *testing.T) {
	svc := NewCatalogService()

	for _, code := range []string{"WASH", "IRON", "DRY_CLEAN", "WASH_AND_IRON"} {
		assert.True(t, svc.IsValidService(code), code)
	}

	assert.False(t, svc.IsValidService("FOLDING"))
	assert.False(t, svc.IsValidService("wash"))
	assert.False(t, svc.IsValidService(""))
}

func TestIsValidUnit(t *testing.T) {
	svc := NewCatalogService()

	assert.True(t, svc.IsValidUnit("KG"))
	assert.True(t, svc.IsValidUnit("PIECE"))
	assert.False(t, svc.IsValidUnit("LITRE"))
	assert.False(t, svc.IsValidUnit("kg"))
}

func TestServicesReturnsCopy(t *testing.T) {
	svc := NewCatalogService()

	items := svc.Services()
	assert.Len(t, items, 4)

	items[0].Code = "MUTATED"
	assert.Equal(t, "WASH", svc.Services()[0].Code)
}
