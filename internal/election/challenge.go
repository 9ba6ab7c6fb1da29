package election

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Challenge is the arithmetic question a registrant must answer. The answer
// stays server-side.
type Challenge struct {
	ID   string `json:"id"`
	Num1 int    `json:"num1"`
	Num2 int    `json:"num2"`
}

// Challenges issues and verifies one-time arithmetic challenges for the
// registration form.
type Challenges struct {
	mu      sync.Mutex
	pending map[string]int
}

func NewChallenges() *Challenges {
	return &Challenges{pending: make(map[string]int)}
}

// Issue creates a new challenge with two small random addends.
func (c *Challenges) Issue() Challenge {
	ch := Challenge{
		ID:   uuid.NewString(),
		Num1: rand.Intn(10) + 1,
		Num2: rand.Intn(10) + 1,
	}

	c.mu.Lock()
	c.pending[ch.ID] = ch.Num1 + ch.Num2
	c.mu.Unlock()
	return ch
}

// Verify consumes the challenge whether or not the answer is right; a failed
// attempt has to fetch a fresh one.
func (c *Challenges) Verify(id string, answer int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	expected, ok := c.pending[id]
	if !ok {
		return false
	}
	delete(c.pending, id)
	return expected == answer
}
