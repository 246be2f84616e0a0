package sim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// ForcePool recycles per-tick force tables.
type ForcePool struct {
	pool sync.Pool
}

func NewForcePool() *ForcePool {
	return &ForcePool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]mgl64.Vec3, 0)
				return &buf
			},
		},
	}
}

// Get returns a zeroed table of length n.
func (p *ForcePool) Get(n int) []mgl64.Vec3 {
	buf := *p.pool.Get().(*[]mgl64.Vec3)
	if cap(buf) < n {
		return make([]mgl64.Vec3, n)
	}
	return buf[:n]
}

func (p *ForcePool) Put(buf []mgl64.Vec3) {
	for i := range buf {
		buf[i] = mgl64.Vec3{}
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}
