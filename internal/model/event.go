package model

// Qualifier is one tag+value side-channel attribute attached to an atomic
// event. The tag set is open-ended; Value is absent for presence-only tags.
type Qualifier struct {
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// Qualifiers is the ordered qualifier list of one event. All lookups are by
// display name; traversal stays inside this type so call sites never walk
// the raw list themselves.
type Qualifiers []Qualifier

// Has reports whether a qualifier with the given name is present.
func (qs Qualifiers) Has(name string) bool {
	for _, q := range qs {
		if q.Name == name {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the named qualifiers is present.
func (qs Qualifiers) HasAny(names ...string) bool {
	for _, n := range names {
		if qs.Has(n) {
			return true
		}
	}
	return false
}

// Get returns the value of the first qualifier with the given name, or nil.
func (qs Qualifiers) Get(name string) any {
	for _, q := range qs {
		if q.Name == name {
			return q.Value
		}
	}
	return nil
}

// GetAny returns the value of the first qualifier whose name is in the
// alias set, scanning the list in source order.
func (qs Qualifiers) GetAny(names ...string) any {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for _, q := range qs {
		if _, ok := set[q.Name]; ok {
			return q.Value
		}
	}
	return nil
}

// Event is one raw recorded action, in source order. Immutable once
// produced; EventID is the join key for every derived table.
type Event struct {
	MatchID        int        `json:"match_id"`
	EventID        *int       `json:"eventId"`
	Minute         *int       `json:"minute"`
	Second         *int       `json:"second"`
	ExpandedMinute *int       `json:"expandedMinute"`
	Period         *int       `json:"period"`
	TeamID         *int       `json:"teamId"`
	PlayerID       *int       `json:"playerId"`
	X              *float64   `json:"x"`
	Y              *float64   `json:"y"`
	EndX           *float64   `json:"endX"`
	EndY           *float64   `json:"endY"`
	TypeValue      *int       `json:"typeValue"`
	TypeName       string     `json:"typeName"`
	OutcomeValue   *int       `json:"outcomeValue"`
	OutcomeName    string     `json:"outcomeName"`
	RelatedEventID *int       `json:"relatedEventId"`
	Qualifiers     Qualifiers `json:"qualifiers"`
}
