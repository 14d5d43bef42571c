package trie

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndSearch(t *testing.T) {
	tr := New()

	assert.True(t, tr.Insert("cat"))
	assert.True(t, tr.Insert("cats"))
	assert.True(t, tr.Insert("dog"))

	assert.True(t, tr.Search("cat"))
	assert.True(t, tr.Search("cats"))
	assert.True(t, tr.Search("dog"))
	assert.Equal(t, 3, tr.Len())

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		assert.False(t, tr.Insert("cat"))
		assert.Equal(t, 3, tr.Len())
	})

	t.Run("prefix of a stored word is not a word", func(t *testing.T) {
		assert.False(t, tr.Search("ca"))
		assert.False(t, tr.Search("do"))
	})

	t.Run("unknown word is not found", func(t *testing.T) {
		assert.False(t, tr.Search("cow"))
		assert.False(t, tr.Search(""))
	})
}

func TestRemove(t *testing.T) {
	t.Run("removing a leaf keeps sibling words intact", func(t *testing.T) {
		tr := New()
		tr.Insert("cat")
		tr.Insert("cats")

		assert.True(t, tr.Remove("cats"))
		assert.True(t, tr.Search("cat"))
		assert.False(t, tr.Search("cats"))
		assert.Equal(t, 1, tr.Len())
	})

	t.Run("removing an inner word keeps longer words intact", func(t *testing.T) {
		tr := New()
		tr.Insert("cat")
		tr.Insert("cats")

		assert.True(t, tr.Remove("cat"))
		assert.False(t, tr.Search("cat"))
		assert.True(t, tr.Search("cats"))
		assert.Equal(t, 1, tr.Len())
	})

	t.Run("removing a missing word leaves the trie unchanged", func(t *testing.T) {
		tr := New()
		tr.Insert("cat")

		assert.False(t, tr.Remove("dog"))
		assert.False(t, tr.Remove("ca"))
		assert.Equal(t, 1, tr.Len())
		assert.True(t, tr.Search("cat"))
	})

	t.Run("removing the last word empties the trie", func(t *testing.T) {
		tr := New()
		tr.Insert("cat")

		assert.True(t, tr.Remove("cat"))
		assert.True(t, tr.Empty())
		assert.Equal(t, 0, tr.Len())
	})
}

func TestWords(t *testing.T) {
	tr := New()
	for _, w := range []string{"dog", "cat", "cats", "apple"} {
		tr.Insert(w)
	}

	words := tr.Words()
	assert.Equal(t, []string{"apple", "cat", "cats", "dog"}, words)
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Insert("cat")
	tr.Insert("dog")

	tr.Clear()
	assert.True(t, tr.Empty())
	assert.False(t, tr.Search("cat"))
	assert.Empty(t, tr.Words())
}

func TestJSONRoundTrip(t *testing.T) {
	tr := New()
	for _, w := range []string{"cat", "cats", "dog"} {
		tr.Insert(w)
	}

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, 3, restored.Len())
	assert.ElementsMatch(t, tr.Words(), restored.Words())
	assert.False(t, restored.Search("ca"))
}

func TestUnmarshalNestedShape(t *testing.T) {
	// 与存量快照格式兼容："*"标记单词结尾
	raw := `{"c":{"a":{"t":{"*":true,"s":{"*":true}}}}}`

	tr := New()
	require.NoError(t, json.Unmarshal([]byte(raw), tr))

	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Search("cat"))
	assert.True(t, tr.Search("cats"))
	assert.False(t, tr.Search("ca"))
}
