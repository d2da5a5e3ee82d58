// Package fixture generates candidate collections and serves them the way the
// candidate API does, for local development and tests.
package fixture

import (
	"encoding/binary"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/candidateview/internal/domain/candidate"
)

const (
	maxYears       = 20
	maxSkills      = 4
	halfYearChance = 8 // one record in N gets a fractional year count
)

var (
	firstNames = []string{
		"Ana", "Bruno", "Carla", "Diego", "Elena", "Farid", "Grace", "Hiro",
		"Ines", "Jonas", "Keira", "Luca", "Maya", "Nikolai", "Olga", "Priya",
	}
	lastNames = []string{
		"Lima", "Okafor", "Schmidt", "Tanaka", "Novak", "Haddad", "Silva",
		"Moreau", "Kowalski", "Ibrahim", "Larsen", "Costa",
	}
	skillPool = []string{
		"Go", "JavaScript", "TypeScript", "React", "Node.js", "Python", "SQL",
		"PostgreSQL", "Redis", "Kubernetes", "Docker", "AWS", "GraphQL", "Rust",
	}
)

// Option configures Generate.
type Option func(*generator)

type generator struct {
	seed uint64
}

// WithSeed makes the output reproducible. The same seed yields the same records.
func WithSeed(seed uint64) Option {
	return func(g *generator) {
		g.seed = seed
	}
}

// Generate returns n candidate records with uuid ids.
func Generate(n int, opts ...Option) []candidate.Record {
	g := &generator{seed: rand.Uint64()}
	for _, opt := range opts {
		opt(g)
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], g.seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	if n < 0 {
		n = 0
	}
	records := make([]candidate.Record, n)
	for i := range records {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			id = uuid.New()
		}
		records[i] = candidate.Record{
			ID:                candidate.ID(id.String()),
			Name:              firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
			Skills:            skills(rng),
			YearsOfExperience: years(rng),
		}
	}
	return records
}

func skills(rng *rand.Rand) string {
	count := 1 + rng.IntN(maxSkills)
	picked := make([]string, 0, count)
	for _, idx := range rng.Perm(len(skillPool))[:count] {
		picked = append(picked, skillPool[idx])
	}
	return strings.Join(picked, ", ")
}

func years(rng *rand.Rand) float64 {
	y := float64(rng.IntN(maxYears + 1))
	if rng.IntN(halfYearChance) == 0 {
		y += 0.5
	}
	return y
}
