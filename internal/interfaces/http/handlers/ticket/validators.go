package ticket

import (
	"sync"

	vo "github.com/qreserve/qreserve/internal/domain/ticket/valueobjects"
	"github.com/qreserve/qreserve/internal/shared/utils"
)

var registerOnce sync.Once

// RegisterValidators installs the ticket_status, ticket_priority and
// vote_type binding tags used by the request structs.
func RegisterValidators() {
	registerOnce.Do(func() {
		utils.RegisterGinValidators()
		utils.RegisterEnumValidation("ticket_status", func(s string) bool {
			return vo.TicketStatus(s).IsValid()
		})
		utils.RegisterEnumValidation("ticket_priority", func(s string) bool {
			return vo.Priority(s).IsValid()
		})
		utils.RegisterEnumValidation("vote_type", func(s string) bool {
			return vo.VoteType(s).IsValid()
		})
	})
}
