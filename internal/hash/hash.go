package hash

import (
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = bcrypt.DefaultCost

// Hasher wraps bcrypt behind a semaphore so a burst of registrations cannot
// monopolize every CPU while other requests are in flight.
type Hasher struct {
	cost int
	sem  chan struct{}
}

func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

func (h *Hasher) HashPassword(password string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (h *Hasher) CheckPassword(hash, password string) bool {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
