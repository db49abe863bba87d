package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GeneralID is the sentinel target for complaints not directed at a
// particular person. It never resolves to a roster entry.
const GeneralID = "general"

// Person is a statically configured roster entry a complaint may reference.
type Person struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type rosterFile struct {
	People []Person `json:"people"`
}

// Registry holds the configured roster. The roster is loaded once at startup;
// complaints keep a name snapshot, so later roster edits never rewrite history.
type Registry struct {
	mu     sync.RWMutex
	people map[string]*Person
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		people: make(map[string]*Person),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	registry := NewRegistry()
	for i := range file.People {
		registry.Register(&file.People[i])
	}
	return registry, nil
}

func (r *Registry) Register(p *Person) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.people[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.people[p.ID] = p
}

func (r *Registry) Get(id string) *Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.people[id]
}

func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.people[id]
	return ok
}

// All returns roster entries in file order.
func (r *Registry) All() []*Person {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Person, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.people[id])
	}
	return result
}
