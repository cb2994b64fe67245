package valueobjects

import "fmt"

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (v VoteType) String() string {
	return string(v)
}

func (v VoteType) IsValid() bool {
	return v == VoteUp || v == VoteDown
}

// Weight is the contribution of one vote to a ticket's score.
func (v VoteType) Weight() int64 {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	}
	return 0
}

func NewVoteType(s string) (VoteType, error) {
	v := VoteType(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid vote type: %s", s)
	}
	return v, nil
}
