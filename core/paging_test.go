package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		name      string
		pageIndex int
		pageSize  int
		want      []int
	}{
		{name: "first page", pageIndex: 0, pageSize: 10, want: items[:10]},
		{name: "middle page", pageIndex: 1, pageSize: 10, want: items[10:20]},
		{name: "last partial page", pageIndex: 2, pageSize: 10, want: items[20:]},
		{name: "past the end", pageIndex: 3, pageSize: 10, want: nil},
		{name: "negative page", pageIndex: -1, pageSize: 10, want: nil},
		{name: "zero page size", pageIndex: 0, pageSize: 0, want: nil},
		{name: "page size larger than list", pageIndex: 0, pageSize: 100, want: items},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(items, tt.pageIndex, tt.pageSize))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}
