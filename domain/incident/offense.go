package incident

// OffenseType is a normalized offense description. Incidents link to offense
// types many-to-many: one incident may carry zero, one, or many offenses.
type OffenseType struct {
	id   int64
	code string
}

// NewOffenseType creates a new OffenseType that has not been persisted yet.
func NewOffenseType(code string) OffenseType {
	return OffenseType{code: code}
}

// ReconstructOffenseType recreates an OffenseType from persisted state.
func ReconstructOffenseType(id int64, code string) OffenseType {
	return OffenseType{id: id, code: code}
}

// ID returns the database identifier (0 for unsaved rows).
func (o OffenseType) ID() int64 { return o.id }

// Code returns the offense description text.
func (o OffenseType) Code() string { return o.code }

// WithID returns a copy with the given database identifier.
func (o OffenseType) WithID(id int64) OffenseType {
	o.id = id
	return o
}
