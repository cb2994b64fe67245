package ticket

import "sort"

// CommentNode is one comment with its direct replies.
type CommentNode struct {
	Comment *Comment
	Replies []*CommentNode
}

// BuildCommentTree arranges a ticket's comments into top-level threads.
// Siblings are ordered by creation time, then id. The walk is breadth-first
// over a parent -> children index, so arbitrarily deep threads never grow the
// call stack and each comment appears exactly once. A comment whose parent is
// not in the input is treated as top-level.
func BuildCommentTree(comments []*Comment) []*CommentNode {
	if len(comments) == 0 {
		return []*CommentNode{}
	}

	present := make(map[uint]bool, len(comments))
	for _, c := range comments {
		present[c.id] = true
	}

	children := make(map[uint][]*Comment)
	roots := make([]*Comment, 0)
	for _, c := range comments {
		if c.parentID == nil || !present[*c.parentID] || *c.parentID == c.id {
			roots = append(roots, c)
			continue
		}
		children[*c.parentID] = append(children[*c.parentID], c)
	}

	sortComments(roots)
	for _, list := range children {
		sortComments(list)
	}

	result := make([]*CommentNode, 0, len(roots))
	queue := make([]*CommentNode, 0, len(comments))
	visited := make(map[uint]bool, len(comments))
	for _, c := range roots {
		node := &CommentNode{Comment: c, Replies: []*CommentNode{}}
		visited[c.id] = true
		result = append(result, node)
		queue = append(queue, node)
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range children[node.Comment.id] {
			if visited[child.id] {
				continue
			}
			visited[child.id] = true
			childNode := &CommentNode{Comment: child, Replies: []*CommentNode{}}
			node.Replies = append(node.Replies, childNode)
			queue = append(queue, childNode)
		}
	}

	return result
}

func sortComments(list []*Comment) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].createdAt.Equal(list[j].createdAt) {
			return list[i].createdAt.Before(list[j].createdAt)
		}
		return list[i].id < list[j].id
	})
}

// CountNodes returns the number of comments in the forest.
func CountNodes(nodes []*CommentNode) int {
	total := 0
	stack := append([]*CommentNode(nil), nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Replies...)
	}
	return total
}
