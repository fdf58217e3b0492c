package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(list []Comment) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestMainCommentsAndReplies(t *testing.T) {
	t.Parallel()

	list := []Comment{
		{ID: "1"},
		{ID: "2", ParentID: "1"},
		{ID: "3"},
	}

	assert.Equal(t, []string{"1", "3"}, ids(MainComments(list)))
	assert.Equal(t, []string{"2"}, ids(Replies(list, "1")))
	assert.Empty(t, Replies(list, "3"))
	assert.Empty(t, Replies(list, ""))
}

func TestBuildThreads_OneLevel(t *testing.T) {
	t.Parallel()

	list := []Comment{
		{ID: "1"},
		{ID: "2", ParentID: "1"},
		{ID: "3"},
		{ID: "4", ParentID: "2"},
		{ID: "5", ParentID: "1"},
		{ID: "6", ParentID: "missing"},
	}

	threads := BuildThreads(list)
	assert.Len(t, threads, 2)
	assert.Equal(t, "1", threads[0].ID)
	assert.Equal(t, []string{"2", "5"}, ids(threads[0].Replies))
	assert.Equal(t, "3", threads[1].ID)
	assert.NotNil(t, threads[1].Replies)
	assert.Empty(t, threads[1].Replies)

	rendered := 0
	for _, th := range threads {
		rendered += 1 + len(th.Replies)
	}
	assert.Equal(t, 4, rendered, "grandchildren and orphans are not rendered")
}

func TestAuthorIDs(t *testing.T) {
	t.Parallel()

	list := []Comment{{AuthorID: "u2"}, {AuthorID: "u1"}, {AuthorID: "u2"}}
	assert.Equal(t, []string{"u2", "u1"}, AuthorIDs(list))
}

func TestValidateContent(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateContent("   "))
	assert.NoError(t, ValidateContent("Pegasus Ryu Sei Ken!"))
}
