package authorization

import (
	"strings"
	"sync/atomic"
)

// Capability names an action on a resource kind as "resource:action".
type Capability string

const (
	CapTicketCreate  Capability = "ticket:create"
	CapTicketReadOwn Capability = "ticket:read_own"
	CapTicketReadAny Capability = "ticket:read_any"
	CapTicketUpdate  Capability = "ticket:update"

	CapCommentCreate  Capability = "comment:create"
	CapCommentReadOwn Capability = "comment:read_own"
	CapCommentReadAny Capability = "comment:read_any"

	CapVoteCreate Capability = "vote:create"

	CapAttachmentUpload Capability = "attachment:upload"

	CapCategoryManage Capability = "category:manage"
	CapUserManage     Capability = "user:manage"
)

// Split returns the resource and action halves of the capability.
func (c Capability) Split() (resource, action string) {
	resource, action, _ = strings.Cut(string(c), ":")
	return resource, action
}

// Checker answers whether a role holds a capability.
type Checker interface {
	Can(role UserRole, capability Capability) bool
}

// minimumRole is the lowest role granted each capability; the ladder grants
// it to every role above as well.
var minimumRole = map[Capability]UserRole{
	CapTicketCreate:     RoleEndUser,
	CapTicketReadOwn:    RoleEndUser,
	CapCommentCreate:    RoleEndUser,
	CapCommentReadOwn:   RoleEndUser,
	CapVoteCreate:       RoleEndUser,
	CapAttachmentUpload: RoleEndUser,

	CapTicketReadAny:  RoleAgent,
	CapTicketUpdate:   RoleAgent,
	CapCommentReadAny: RoleAgent,

	CapCategoryManage: RoleAdmin,
	CapUserManage:     RoleAdmin,
}

type checkerHolder struct {
	checker Checker
}

var installed atomic.Pointer[checkerHolder]

// InstallChecker routes Can through c (the casbin enforcer in the server and
// worker). Passing nil restores the static table.
func InstallChecker(c Checker) {
	if c == nil {
		installed.Store(nil)
		return
	}
	installed.Store(&checkerHolder{checker: c})
}

// Can is the capability check every use case calls first. Without an
// installed checker it falls back to the static table.
func Can(role UserRole, capability Capability) bool {
	if h := installed.Load(); h != nil {
		return h.checker.Can(role, capability)
	}
	return StaticCan(role, capability)
}

// StaticCan consults the built-in table. Unknown roles and unknown
// capabilities are denied.
func StaticCan(role UserRole, capability Capability) bool {
	min, ok := minimumRole[capability]
	if !ok {
		return false
	}
	return role.AtLeast(min)
}

// DefaultGrants returns the direct (non-inherited) grants per role, used to
// seed external policy stores.
func DefaultGrants() map[UserRole][]Capability {
	grants := make(map[UserRole][]Capability)
	for capability, role := range minimumRole {
		grants[role] = append(grants[role], capability)
	}
	return grants
}
