package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllHasSeventyFiveUniqueAccounts(t *testing.T) {
	all := All()
	assert.Len(t, all, 75)
	assert.Equal(t, 75, Size())

	seen := make(map[int]bool)
	for _, a := range all {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
		assert.Positive(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.Contains(t, Categories, a.Category)
	}
}

func TestAllKeepsDeclarationOrder(t *testing.T) {
	all := All()
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[2].ID)
	assert.Equal(t, 14, all[5].ID)
	assert.Equal(t, 70, all[len(all)-1].ID)
}

func TestByID(t *testing.T) {
	a, err := ByID(3)
	require.NoError(t, err)
	assert.Equal(t, "대출금", a.Name)
	assert.Equal(t, CategoryBalanceSheet, a.Category)

	a, err = ByID(IDNonPerformingRatio)
	require.NoError(t, err)
	assert.Equal(t, "고정이하여신비율", a.Name)
}

func TestByIDUnknown(t *testing.T) {
	_, err := ByID(999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccountNotFound))

	_, err = ByID(0)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCallersCannotMutateCatalog(t *testing.T) {
	a, err := ByID(3)
	require.NoError(t, err)
	a.Aliases[0] = "changed"
	a.Name = "changed"

	again, err := ByID(3)
	require.NoError(t, err)
	assert.Equal(t, "대출금", again.Name)
	assert.Equal(t, "대출채권", again.Aliases[0])

	all := All()
	all[2].Aliases[0] = "changed"
	assert.Equal(t, "대출채권", All()[2].Aliases[0])
}

func TestLabels(t *testing.T) {
	a, err := ByID(12)
	require.NoError(t, err)
	assert.Equal(t, []string{"고정이하여신비율", "고정이하비율", "부실여신비율"}, a.Labels())
}

func TestByCategory(t *testing.T) {
	assert.Len(t, ByCategory(CategoryBasic), 2)
	assert.Len(t, ByCategory(CategoryBalanceSheet), 12)
	assert.Len(t, ByCategory(CategoryIncomeStatement), 22)
	assert.Len(t, ByCategory(CategoryKeyRatio), 8)
	assert.Empty(t, ByCategory(Category("없음")))
}
