// Package random предоставляет источник случайности, который внедряется в генераторы
// сигналов и алертов, чтобы тесты могли подставлять детерминированные последовательности.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source - минимальный интерфейс источника случайных чисел
type Source interface {
	// Float64 возвращает число из [0, 1)
	Float64() float64
	// IntN возвращает число из [0, n). n должно быть > 0.
	IntN(n int) int
}

// Locked - потокобезопасная обертка над *rand.Rand
type Locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New создает источник с заданным seed. seed == 0 означает seed от текущего времени.
func New(seed uint64) *Locked {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Sequence - детерминированный источник: по кругу отдает заданные значения.
// IntN(n) возвращает floor(v*n) для очередного значения v.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

func (s *Sequence) IntN(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
