package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("SPIRIT").Valid())
	assert.False(t, Category("beer").Valid())
}

func TestProduct_StockLevel(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  StockLevel
	}{
		{"out of stock", 0, StockLevelOut},
		{"one left", 1, StockLevelLow},
		{"at threshold", 10, StockLevelLow},
		{"above threshold", 11, StockLevelIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Name: "IPA", Stock: tt.stock}
			assert.Equal(t, tt.want, p.StockLevel(10))
		})
	}
}
