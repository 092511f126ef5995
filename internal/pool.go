package internal

import (
	"sync"

	"github.com/motorkit/motor/phys"
)

// MaxContacts caps how many contacts a single tick may record. Contacts past
// the cap are resolved but not reported, keeping per-tick work bounded.
const MaxContacts = 32

var ContactPool = sync.Pool{
	New: func() interface{} {
		s := make([]phys.HitInfo, 0, MaxContacts)
		return &s
	},
}
