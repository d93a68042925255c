package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `product_name,price,category,tags,description,link
RGB Keyboard,60,Tech,gaming rgb keyboard,Mechanical keyboard with lights,https://example.com/kb
Yoga Mat,40,Wellness,yoga wellness,Non-slip mat,https://example.com/mat
`

func TestLoad(t *testing.T) {
	cat, report, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 2, report.Loaded)
	assert.Empty(t, report.Skipped)

	first := cat.At(0)
	assert.Equal(t, "gift-1", first.ID)
	assert.Equal(t, "RGB Keyboard", first.Name)
	assert.Equal(t, 60.0, first.Price)
	assert.Equal(t, "Tech gaming rgb keyboard Mechanical keyboard with lights", first.CombinedText())

	item, ok := cat.Get("gift-2")
	require.True(t, ok)
	assert.Equal(t, "Yoga Mat", item.Name)
}

func TestLoadMissingColumns(t *testing.T) {
	_, _, err := Load(strings.NewReader("product_name,price,category\nA,1,B\n"))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"tags", "description", "link"}, schemaErr.Missing)
}

func TestLoadEmptyInput(t *testing.T) {
	_, _, err := Load(strings.NewReader(""))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Missing, len(RequiredColumns))
}

func TestLoadHeaderOnlyIsValid(t *testing.T) {
	cat, report, err := Load(strings.NewReader("product_name,price,category,tags,description,link\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
	assert.Equal(t, 0, report.Loaded)
}

func TestLoadSkipsBadRows(t *testing.T) {
	input := `id,product_name,price,category,tags,description,link
a1,Good,$25.50,Books,reading,A book,https://x
a2,Bad,abc,Books,reading,Broken price,https://x
a3,Negative,-3,Books,reading,Negative price,https://x
a4,Also Good,10,Toys,fun,Toy,https://x
`
	cat, report, err := Load(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, 2, report.Skipped[0].Row)
	assert.Equal(t, 3, report.Skipped[1].Row)

	item, ok := cat.Get("a1")
	require.True(t, ok)
	assert.Equal(t, 25.5, item.Price)
}

func TestLoadHeaderIsCaseInsensitive(t *testing.T) {
	input := "Product_Name, Price ,Category,Tags,Description,Link\nMug,12,Home,coffee,Big mug,https://x\n"
	cat, _, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Mug", cat.At(0).Name)
}

func TestStats(t *testing.T) {
	cat := New([]Item{
		{ID: "1", Price: 30, Category: "Tech"},
		{ID: "2", Price: 5, Category: "Books"},
		{ID: "3", Price: 99, Category: "Tech"},
	})

	stats := cat.Stats()
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 5.0, stats.MinPrice)
	assert.Equal(t, 99.0, stats.MaxPrice)
	assert.Equal(t, []string{"Books", "Tech"}, stats.Categories)

	empty := New(nil).Stats()
	assert.Equal(t, 0, empty.TotalItems)
	assert.Empty(t, empty.Categories)
}

func TestNewCopiesItems(t *testing.T) {
	items := []Item{{ID: "x", Name: "Original"}}
	cat := New(items)
	items[0].Name = "Changed"

	assert.Equal(t, "Original", cat.At(0).Name)

	out := cat.Items()
	out[0].Name = "Mutated"
	assert.Equal(t, "Original", cat.At(0).Name)
}

func TestItemInBudget(t *testing.T) {
	item := Item{Price: 50}
	assert.True(t, item.InBudget(50, 50))
	assert.True(t, item.InBudget(10, 60))
	assert.False(t, item.InBudget(51, 60))
	assert.False(t, item.InBudget(10, 49.99))
}
