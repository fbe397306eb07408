package filter

import (
	"github.com/essethon/go-lsm-format/base"
)

// internalPolicy forwards a user-key Policy over encoded internal keys. The
// table layer hands it physical keys; the wrapped policy only ever sees the
// user-key portions, so filters built through it stay comparable with user
// keys at probe time.
type internalPolicy struct {
	user Policy
}

// NewInternalPolicy wraps user so it can be fed encoded internal keys.
func NewInternalPolicy(user Policy) Policy {
	return &internalPolicy{user: user}
}

func (p *internalPolicy) Name() string {
	return p.user.Name()
}

func (p *internalPolicy) CreateFilter(keys [][]byte, dst *[]byte) {
	// Duplicate user keys across sequence numbers are not suppressed; the
	// inner policy tolerates them.
	userKeys := make([][]byte, len(keys))
	for i, k := range keys {
		userKeys[i] = base.ExtractUserKey(k)
	}
	p.user.CreateFilter(userKeys, dst)
}

func (p *internalPolicy) KeyMayMatch(key, filter []byte) bool {
	return p.user.KeyMayMatch(base.ExtractUserKey(key), filter)
}

var _ Policy = (*internalPolicy)(nil)
