package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllCategories_PriorityOrder(t *testing.T) {
	cats := AllCategories()

	assert.Equal(t, CategoryMerger, cats[0], "merger has highest priority")
	assert.Equal(t, CategoryOther, cats[len(cats)-1], "other is the fallback")
	assert.Len(t, cats, 10)
}

func TestEventCategory_IsValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid(), "category %s should be valid", c)
	}
	assert.False(t, EventCategory("earnings_call").IsValid())
	assert.False(t, EventCategory("").IsValid())
}

func TestEventCategory_Description(t *testing.T) {
	assert.Equal(t, "Merger/Acquisition", CategoryMerger.Description())
	assert.Equal(t, "Other/Unclassified", CategoryOther.Description())
	assert.Equal(t, "Unknown", EventCategory("bogus").Description())
}

func TestEventCategory_String(t *testing.T) {
	assert.Equal(t, "stock_split", CategorySplit.String())
}
