package valueobjects

import "fmt"

// Kind identifies the event a notification reports.
type Kind string

const (
	KindTicketCreated       Kind = "ticket_created"
	KindTicketStatusChanged Kind = "ticket_status_changed"
	KindCommentCreated      Kind = "comment_created"
)

var validKinds = map[Kind]bool{
	KindTicketCreated:       true,
	KindTicketStatusChanged: true,
	KindCommentCreated:      true,
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	return validKinds[k]
}

// RoutingKey is the broker routing key for messages of this kind.
func (k Kind) RoutingKey() string {
	return "notification." + string(k)
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid notification kind: %s", s)
	}
	return k, nil
}
