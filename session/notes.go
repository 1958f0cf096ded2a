package session

// Notes is a plain in-memory note map. It satisfies the engine's
// session note contract and backs the redis Store's load/save cycle.
type Notes struct {
	values map[string]string
}

// NewNotes returns an empty note map.
func NewNotes() *Notes {
	return &Notes{values: make(map[string]string)}
}

// NotesFrom wraps an existing map without copying it.
func NotesFrom(values map[string]string) *Notes {
	if values == nil {
		values = make(map[string]string)
	}
	return &Notes{values: values}
}

func (n *Notes) GetNote(name string) string {
	return n.values[name]
}

func (n *Notes) SetNote(name, value string) {
	n.values[name] = value
}

func (n *Notes) RemoveNote(name string) {
	delete(n.values, name)
}

// Len reports how many notes are set.
func (n *Notes) Len() int {
	return len(n.values)
}

// Map returns a copy of the underlying values.
func (n *Notes) Map() map[string]string {
	out := make(map[string]string, len(n.values))
	for k, v := range n.values {
		out[k] = v
	}
	return out
}
