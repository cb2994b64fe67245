package ticket

import (
	"fmt"
	"time"

	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// Vote is one user's up or down vote on a ticket. A user holds at most one
// vote per ticket.
type Vote struct {
	id        uint
	ticketID  uint
	userID    uint
	voteType  vo.VoteType
	createdAt time.Time
	updatedAt time.Time
}

func NewVote(ticketID, userID uint, voteType vo.VoteType) (*Vote, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !voteType.IsValid() {
		return nil, fmt.Errorf("invalid vote type: %s", voteType)
	}
	now := biztime.NowUTC()
	return &Vote{
		ticketID:  ticketID,
		userID:    userID,
		voteType:  voteType,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructVote(id, ticketID, userID uint, voteType vo.VoteType, createdAt, updatedAt time.Time) (*Vote, error) {
	if id == 0 {
		return nil, fmt.Errorf("vote ID cannot be zero")
	}
	if !voteType.IsValid() {
		return nil, fmt.Errorf("invalid vote type: %s", voteType)
	}
	return &Vote{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		voteType:  voteType,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (v *Vote) ID() uint {
	return v.id
}

func (v *Vote) TicketID() uint {
	return v.ticketID
}

func (v *Vote) UserID() uint {
	return v.userID
}

func (v *Vote) Type() vo.VoteType {
	return v.voteType
}

func (v *Vote) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Vote) UpdatedAt() time.Time {
	return v.updatedAt
}

func (v *Vote) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("vote ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("vote ID cannot be zero")
	}
	v.id = id
	return nil
}

func (v *Vote) switchTo(voteType vo.VoteType) {
	v.voteType = voteType
	v.updatedAt = biztime.NowUTC()
}

// VoteAction is what has to be persisted after a vote request.
type VoteAction int

const (
	VoteActionCreate VoteAction = iota + 1
	VoteActionRemove
	VoteActionSwitch
)

func (a VoteAction) String() string {
	switch a {
	case VoteActionCreate:
		return "create"
	case VoteActionRemove:
		return "remove"
	case VoteActionSwitch:
		return "switch"
	}
	return "unknown"
}

// CastVote resolves a vote request against the caller's existing vote:
// no vote creates one, the same type again removes it, the opposite type
// switches it. For VoteActionRemove the returned vote is the one to delete.
func CastVote(existing *Vote, ticketID, userID uint, requested vo.VoteType) (*Vote, VoteAction, error) {
	if !requested.IsValid() {
		return nil, 0, fmt.Errorf("invalid vote type: %s", requested)
	}

	if existing == nil {
		v, err := NewVote(ticketID, userID, requested)
		if err != nil {
			return nil, 0, err
		}
		return v, VoteActionCreate, nil
	}

	if existing.ticketID != ticketID || existing.userID != userID {
		return nil, 0, fmt.Errorf("vote %d does not belong to user %d on ticket %d", existing.id, userID, ticketID)
	}

	if existing.voteType == requested {
		return existing, VoteActionRemove, nil
	}

	existing.switchTo(requested)
	return existing, VoteActionSwitch, nil
}
