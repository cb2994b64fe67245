package usecases

import (
	"context"
	"fmt"

	"github.com/qreserve/qreserve/internal/application/ticket/dto"
	"github.com/qreserve/qreserve/internal/domain/category"
	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/domain/user"
)

// ticketAssembler builds read models. Derived fields and related summaries
// are loaded with one query per kind for the whole page.
type ticketAssembler struct {
	ticketRepo   ticket.Repository
	userRepo     user.Repository
	categoryRepo category.Repository
	renderer     MarkdownRenderer
}

func (a *ticketAssembler) assemble(ctx context.Context, tickets []*ticket.Ticket) ([]*dto.TicketDTO, error) {
	result := make([]*dto.TicketDTO, 0, len(tickets))
	if len(tickets) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(tickets))
	userIDs := make([]uint, 0, len(tickets)*2)
	categoryIDs := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		ids = append(ids, t.ID())
		userIDs = append(userIDs, t.OwnerID())
		if id := t.AssigneeID(); id != nil {
			userIDs = append(userIDs, *id)
		}
		if id := t.CategoryID(); id != nil {
			categoryIDs = append(categoryIDs, *id)
		}
	}

	stats, err := a.ticketRepo.Stats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket stats: %w", err)
	}
	users, err := a.userSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	categories, err := a.categorySummaries(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		d := dto.ToTicketDTO(t)
		d.DescriptionHTML = a.renderer.Render(t.Description())
		d.Owner = users[t.OwnerID()]
		if id := t.AssigneeID(); id != nil {
			d.Assignee = users[*id]
		}
		if id := t.CategoryID(); id != nil {
			d.Category = categories[*id]
		}
		s := stats[t.ID()]
		d.CommentCount = s.CommentCount
		d.VoteScore = s.VoteScore
		result = append(result, d)
	}
	return result, nil
}

// bareTicket is the read model without related summaries or counts. Write
// use cases fall back to it when enrichment fails after the commit.
func (a *ticketAssembler) bareTicket(t *ticket.Ticket) *dto.TicketDTO {
	d := dto.ToTicketDTO(t)
	d.DescriptionHTML = a.renderer.Render(t.Description())
	return d
}

func (a *ticketAssembler) assembleOne(ctx context.Context, t *ticket.Ticket) (*dto.TicketDTO, error) {
	list, err := a.assemble(ctx, []*ticket.Ticket{t})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (a *ticketAssembler) userSummaries(ctx context.Context, ids []uint) (map[uint]*dto.UserSummaryDTO, error) {
	out := make(map[uint]*dto.UserSummaryDTO, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	users, err := a.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		out[u.ID()] = dto.ToUserSummaryDTO(u)
	}
	return out, nil
}

func (a *ticketAssembler) categorySummaries(ctx context.Context, ids []uint) (map[uint]*dto.CategorySummaryDTO, error) {
	out := make(map[uint]*dto.CategorySummaryDTO, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	categories, err := a.categoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		out[c.ID()] = dto.ToCategorySummaryDTO(c)
	}
	return out, nil
}

// commentDTO renders one comment without replies.
func (a *ticketAssembler) commentDTO(c *ticket.Comment, authors map[uint]*dto.UserSummaryDTO) *dto.CommentDTO {
	d := dto.ToCommentDTO(c)
	d.ContentHTML = a.renderer.Render(c.Content())
	d.Author = authors[c.AuthorID()]
	return d
}

// commentTree converts the domain tree breadth first, so arbitrarily deep
// threads never grow the call stack.
func (a *ticketAssembler) commentTree(ctx context.Context, comments []*ticket.Comment) ([]*dto.CommentDTO, error) {
	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID())
	}
	authors, err := a.userSummaries(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	type pending struct {
		node *ticket.CommentNode
		out  *dto.CommentDTO
	}

	roots := ticket.BuildCommentTree(comments)
	result := make([]*dto.CommentDTO, 0, len(roots))
	queue := make([]pending, 0, len(comments))
	for _, root := range roots {
		d := a.commentDTO(root.Comment, authors)
		result = append(result, d)
		queue = append(queue, pending{node: root, out: d})
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, child := range p.node.Replies {
			d := a.commentDTO(child.Comment, authors)
			p.out.Replies = append(p.out.Replies, d)
			queue = append(queue, pending{node: child, out: d})
		}
	}
	return result, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
