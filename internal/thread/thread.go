// Package thread arranges a discussion's flat comment list into reply trees.
package thread

import (
	"sort"

	"github.com/google/uuid"
	"github.com/oseayemenre/upepo/internal/models"
)

// Build returns the top-level comments newest first, each carrying its replies
// oldest first, recursively. Comments are indexed by position and linked by
// parent id, so every reply appears exactly once under its own parent. A reply
// whose parent is not in the list is dropped.
func Build(comments []models.Comment) []models.CommentThread {
	children := make(map[uuid.UUID][]int, len(comments))
	roots := make([]int, 0, len(comments))

	for i, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], i)
	}

	sortByCreated(comments, roots, true)

	visited := make([]bool, len(comments))

	var build func(i int) models.CommentThread

	build = func(i int) models.CommentThread {
		visited[i] = true

		node := models.CommentThread{
			Comment: comments[i],
			Replies: []models.CommentThread{},
		}

		kids := children[comments[i].ID]
		sortByCreated(comments, kids, false)

		for _, k := range kids {
			if visited[k] {
				continue
			}
			node.Replies = append(node.Replies, build(k))
		}

		return node
	}

	threads := make([]models.CommentThread, 0, len(roots))

	for _, r := range roots {
		threads = append(threads, build(r))
	}

	return threads
}

// CountToDepth returns the number of comments in the first depth levels of the
// trees. A depth of zero or less counts every level.
func CountToDepth(threads []models.CommentThread, depth int) int {
	n := 0

	for _, t := range threads {
		n++
		if depth != 1 {
			n += CountToDepth(t.Replies, depth-1)
		}
	}

	return n
}

func sortByCreated(comments []models.Comment, idx []int, newestFirst bool) {
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := comments[idx[a]], comments[idx[b]]

		if !ca.CreatedAt.Equal(cb.CreatedAt) {
			if newestFirst {
				return ca.CreatedAt.After(cb.CreatedAt)
			}
			return ca.CreatedAt.Before(cb.CreatedAt)
		}

		return ca.ID.String() < cb.ID.String()
	})
}
