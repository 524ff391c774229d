package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		size int
		want [][]string
	}{
		{
			name: "empty input",
			ids:  nil,
			size: 3,
			want: nil,
		},
		{
			name: "smaller than one chunk",
			ids:  []string{"a", "b"},
			size: 3,
			want: [][]string{{"a", "b"}},
		},
		{
			name: "exact multiple",
			ids:  []string{"a", "b", "c", "d"},
			size: 2,
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "trailing partial chunk",
			ids:  []string{"a", "b", "c", "d", "e"},
			size: 2,
			want: [][]string{{"a", "b"}, {"c", "d"}, {"e"}},
		},
		{
			name: "size one",
			ids:  []string{"a", "b"},
			size: 1,
			want: [][]string{{"a"}, {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkIDs(tt.ids, tt.size))
		})
	}
}

func TestChunkIDs_BatchLimit(t *testing.T) {
	ids := make([]string, 2500)
	for i := range ids {
		ids[i] = "id"
	}

	chunks := chunkIDs(ids, MaxBatchIDs)

	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 500)
}
