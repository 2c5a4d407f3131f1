package httpbinding

import (
	"sort"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// ShapeSet is a grow-only set of shape ids. The zero value is empty and
// ready to use.
type ShapeSet struct {
	ids map[shapedef.ShapeID]struct{}
}

// NewShapeSet returns a set holding ids.
func NewShapeSet(ids ...shapedef.ShapeID) ShapeSet {
	var s ShapeSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *ShapeSet) Add(id shapedef.ShapeID) bool {
	if s.ids == nil {
		s.ids = make(map[shapedef.ShapeID]struct{})
	}
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Merge adds every id of o to s.
func (s *ShapeSet) Merge(o ShapeSet) {
	for id := range o.ids {
		s.Add(id)
	}
}

// Has reports whether id is in the set.
func (s ShapeSet) Has(id shapedef.ShapeID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids in the set.
func (s ShapeSet) Len() int {
	return len(s.ids)
}

// Sorted returns the ids in lexical order.
func (s ShapeSet) Sorted() []shapedef.ShapeID {
	ids := make([]shapedef.ShapeID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
