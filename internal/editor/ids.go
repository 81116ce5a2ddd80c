package editor

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	ActivityIDPrefix = "act"
	PoolIDPrefix     = "extra"
)

// IDGenerator hands out activity ids. Ids must be unique within one State.
type IDGenerator interface {
	NewID(prefix string) string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// SequenceGenerator yields prefix-1, prefix-2, ... with one counter shared by
// all prefixes.
type SequenceGenerator struct {
	n atomic.Int64
}

func (s *SequenceGenerator) NewID(prefix string) string {
	return prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}
