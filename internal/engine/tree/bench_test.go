package tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dshills/orderly/internal/seq"
)

var benchSizes = []int{1000, 10000, 100000}

// randomMap builds a map of size distinct random keys.
func randomMap(size int) (*Map[int, int], []int) {
	m := NewOrdered[int, int]()
	keys := rand.Perm(size * 4)[:size]
	for _, k := range keys {
		m.RawPut(k, k)
	}
	return m, keys
}

func BenchmarkPut(b *testing.B) {
	for _, size := range benchSizes {
		keys := rand.Perm(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m := NewOrdered[int, int]()
				for _, k := range keys {
					m.Put(k, k)
				}
			}
		})
	}
}

func BenchmarkGet(b *testing.B) {
	for _, size := range benchSizes {
		m, keys := randomMap(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m.Get(keys[i%len(keys)])
			}
		})
	}
}

func BenchmarkAt(b *testing.B) {
	for _, size := range benchSizes {
		m, _ := randomMap(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m.At(i % size)
			}
		})
	}
}

func BenchmarkRank(b *testing.B) {
	for _, size := range benchSizes {
		m, keys := randomMap(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = m.Rank(keys[i%len(keys)])
			}
		})
	}
}

func BenchmarkPutRemove(b *testing.B) {
	for _, size := range benchSizes {
		m, keys := randomMap(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				k := keys[i%len(keys)]
				m.RemoveKey(k)
				m.Put(k, k)
			}
		})
	}
}

func BenchmarkRange(b *testing.B) {
	for _, size := range benchSizes {
		m, _ := randomMap(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lo := i % (size * 4)
				for range m.Range(lo, lo+100, seq.InEx).All() {
				}
			}
		})
	}
}
