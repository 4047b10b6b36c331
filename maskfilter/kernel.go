package maskfilter

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
)

// KernelRadius is the number of taps on each side of a Gaussian kernel for
// sigma: three standard deviations, rounded up.
func KernelRadius(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// GaussianKernel generates a normalized 1D Gaussian kernel of
// 2*KernelRadius(sigma)+1 taps. For sigma <= 0 it returns the identity
// kernel [1].
func GaussianKernel(sigma float64) []float32 {
	half := KernelRadius(sigma)
	if half == 0 {
		return []float32{1}
	}
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := float32(2 * sigma * sigma)
	var sum float32
	for i := range kernel {
		x := float32(i - half)
		kernel[i] = math32.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}
	inv := 1 / sum
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernelCache memoizes kernels by the exact sigma.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[uint64][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[uint64][]float32),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(sigma float64) []float32 {
	key := math.Float64bits(sigma)

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		n := 0
		for k := range c.cache {
			delete(c.cache, k)
			if n++; n >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel is GaussianKernel through a shared cache. The
// returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
