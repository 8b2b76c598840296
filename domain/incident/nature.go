package incident

// Nature is the lookup row normalizing repeated nature-of-incident text.
type Nature struct {
	id   int64
	text string
}

// NewNature creates a new Nature that has not been persisted yet.
func NewNature(text string) Nature {
	return Nature{text: text}
}

// ReconstructNature recreates a Nature from persisted state.
func ReconstructNature(id int64, text string) Nature {
	return Nature{id: id, text: text}
}

// ID returns the database identifier (0 for unsaved rows).
func (n Nature) ID() int64 { return n.id }

// Text returns the unique nature-of-incident text.
func (n Nature) Text() string { return n.text }

// WithID returns a copy with the given database identifier.
func (n Nature) WithID(id int64) Nature {
	n.id = id
	return n
}
