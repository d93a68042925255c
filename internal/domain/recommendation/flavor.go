package recommendation

import (
	"math/rand"
	"sync"
	"time"
)

// FlavorPhrases is the fixed pool of light-hearted phrases attached when a
// caller opts in.
var FlavorPhrases = []string{
	"Adipoli choice, machane! 👌",
	"Pwoli gift aanu ithu! 🔥",
	"Ithokke gift koduthaal, recipient parayum 'njan poli aanu' ennu! 😄",
	"Mass gift! Perfect for any celebration! 🎉",
	"Kerala style gift recommendation! Traditional yet modern! 🌴",
	"Gift guru level: Malayalam Boss! 😎",
}

// Picker chooses an index in [0, n). Tests supply a fixed sequence.
type Picker interface {
	Intn(n int) int
}

// lockedRand makes a math/rand source safe for concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker returns a uniform picker seeded from the clock.
func NewRandomPicker() Picker {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededPicker returns a deterministic picker.
func NewSeededPicker(seed int64) Picker {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// PickFlavor returns a phrase from the pool.
func PickFlavor(p Picker) string {
	if p == nil || len(FlavorPhrases) == 0 {
		return ""
	}
	i := p.Intn(len(FlavorPhrases))
	if i < 0 || i >= len(FlavorPhrases) {
		i = 0
	}
	return FlavorPhrases[i]
}
