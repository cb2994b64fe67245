package ticket

import "errors"

var ErrParentOnOtherTicket = errors.New("parent comment belongs to a different ticket")

// ErrAttachmentTooLarge is returned by file stores when an upload exceeds the
// configured limit.
var ErrAttachmentTooLarge = errors.New("attachment exceeds maximum size")
