package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightsLabel(t *testing.T) {
	assert.Equal(t, SameDayLabel, NightsLabel("1"))
	assert.Equal(t, "2박 3일", NightsLabel("3"))
	assert.Equal(t, "6박 7일", NightsLabel(" 7 "))
	assert.Equal(t, "", NightsLabel("0"))
	assert.Equal(t, "", NightsLabel("-2"))
	assert.Equal(t, "", NightsLabel("abc"))
	assert.Equal(t, "", NightsLabel(""))
}

func TestBudgetPreview(t *testing.T) {
	assert.Equal(t, "(5만원)", BudgetPreview("50000"))
	assert.Equal(t, "(9,999원)", BudgetPreview("9999"))
	assert.Equal(t, "(1억 2,345만 6,789원)", BudgetPreview("123456789"))
	assert.Equal(t, "", BudgetPreview("0"))
	assert.Equal(t, "", BudgetPreview("won"))
}
