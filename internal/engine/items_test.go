package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/domain"
	"invoscan/internal/engine"
)

func itemsOf(lines []string) []string {
	rec := engine.New(engine.DefaultConfig()).Extract(lines)
	out := make([]string, 0, len(rec.Items))
	for _, it := range rec.Items {
		gst := "<nil>"
		if it.GSTPercent != nil {
			gst = *it.GSTPercent
		}
		out = append(out, fmt.Sprintf("%s|%s|%s|%s|%s", it.Description, it.Quantity, it.UnitPrice, gst, it.LineTotal))
	}
	return out
}

func TestExtract_SingleItem(t *testing.T) {
	rec := engine.New(engine.DefaultConfig()).Extract([]string{
		"Unit Price",
		"Widget A",
		"2",
		"10.00",
		"10%",
		"20.00",
		"Customer",
		"Jane Doe",
	})
	require.Len(t, rec.Items, 1)
	it := rec.Items[0]
	assert.Equal(t, "Widget A", it.Description)
	assert.Equal(t, "2", it.Quantity)
	assert.Equal(t, "10.00", it.UnitPrice)
	require.NotNil(t, it.GSTPercent)
	assert.Equal(t, "10%", *it.GSTPercent)
	assert.Equal(t, "20.00", it.LineTotal)
}

func TestExtract_MultipleItems(t *testing.T) {
	got := itemsOf([]string{
		"Description Quantity",
		"Widget A", "2", "10.00", "10%", "20.00",
		"Widget B", "1", "5.50", "10%", "5.50",
		"Customer",
	})
	assert.Equal(t, []string{
		"Widget A|2|10.00|10%|20.00",
		"Widget B|1|5.50|10%|5.50",
	}, got)
}

func TestExtract_ThirdTokenNotPercent(t *testing.T) {
	// qty, unit price, a second price figure, total: the GST column is
	// decided purely by token shape.
	got := itemsOf([]string{
		"Unit Price",
		"Consulting", "3", "100.00", "250.00", "300.00",
		"Customer",
	})
	assert.Equal(t, []string{"Consulting|3|100.00|<nil>|300.00"}, got)
}

func TestExtract_NoHeaderNoItems(t *testing.T) {
	got := itemsOf([]string{"Widget A", "2", "10.00", "10%", "20.00"})
	assert.Empty(t, got)
}

func TestExtract_PartialGroupDiscarded(t *testing.T) {
	// Only three numeric tokens before the terminator: nothing is emitted.
	got := itemsOf([]string{
		"Unit Price",
		"Widget A", "2", "10.00", "20.00",
		"Customer",
	})
	assert.Empty(t, got)
}

func TestExtract_DescriptionNoiseFiltered(t *testing.T) {
	got := itemsOf([]string{
		"Unit Price",
		"Item",          // noise prefix
		"GST 10%",       // noise prefix
		"Amount AUD",    // noise phrase
		"tixperts-2024", // vendor watermark
		"Widget A",
		"2", "10.00", "10%", "20.00",
		"Customer",
	})
	assert.Equal(t, []string{"Widget A|2|10.00|10%|20.00"}, got)
}

func TestExtract_MalformedRowMergesForward(t *testing.T) {
	// The first row is missing its total, so its lines carry into the next
	// group and only one merged item emerges.
	got := itemsOf([]string{
		"Unit Price",
		"Broken row", "2", "10.00",
		"Next row", "1", "5.00", "5.00",
		"Customer",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Broken row Next row|2|10.00|<nil>|5.00", got[0])
}

func TestExtract_CustomLayout(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Layout = threeTokenLayout{}
	rec := engine.New(cfg).Extract([]string{
		"Unit Price",
		"Widget A", "2", "10.00", "20.00",
		"Customer",
	})
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "2", rec.Items[0].Quantity)
	assert.Equal(t, "10.00", rec.Items[0].UnitPrice)
	assert.Nil(t, rec.Items[0].GSTPercent)
	assert.Equal(t, "20.00", rec.Items[0].LineTotal)
}

// threeTokenLayout drops the GST column: qty, unit price, total.
type threeTokenLayout struct{}

func (threeTokenLayout) TokensPerItem() int { return 3 }

func (threeTokenLayout) Assign(numeric []string) domain.LineItem {
	return domain.LineItem{
		Quantity:  numeric[0],
		UnitPrice: numeric[1],
		LineTotal: numeric[2],
	}
}
