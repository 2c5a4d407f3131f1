package httpbinding

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/Unity-Technologies/restbind/shapedef"
)

// ResolveDocumentShapes returns the smallest superset of seeds closed over
// structural containment: the member targets of structures and unions, the
// element targets of lists and sets and the value targets of maps are added
// when their kind needs a document serializer. The walk is breadth first in
// id order and visits every shape at most once, so cyclic schemas terminate.
func ResolveDocumentShapes(model *shapedef.Model, seeds ShapeSet) (ShapeSet, error) {
	var resolved ShapeSet
	queue := seeds.Sorted()
	for _, id := range queue {
		resolved.Add(id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		shape, err := model.Expect(id)
		if err != nil {
			return ShapeSet{}, errors.Wrap(err, "cannot resolve document shapes")
		}
		children, err := structuralChildren(model, shape)
		if err != nil {
			return ShapeSet{}, err
		}
		for _, child := range children {
			if !IsDocumentSerializerRequired(child.Kind) {
				continue
			}
			if resolved.Add(child.ID) {
				queue = append(queue, child.ID)
			}
		}
	}
	return resolved, nil
}

// structuralChildren returns the distinct targets shape contains, in id
// order. Map keys are not followed.
func structuralChildren(model *shapedef.Model, shape *shapedef.Shape) ([]*shapedef.Shape, error) {
	var members []*shapedef.Member
	switch shape.Kind {
	case shapedef.KindStructure, shapedef.KindUnion:
		members = shape.Members
	case shapedef.KindList, shapedef.KindSet:
		if m := shape.Member("member"); m != nil {
			members = append(members, m)
		}
	case shapedef.KindMap:
		if m := shape.Member("value"); m != nil {
			members = append(members, m)
		}
	}

	seen := make(map[shapedef.ShapeID]bool, len(members))
	var children []*shapedef.Shape
	for _, m := range members {
		target, err := model.Target(m)
		if err != nil {
			return nil, errors.Wrap(err, "cannot resolve document shapes")
		}
		if seen[target.ID] {
			continue
		}
		seen[target.ID] = true
		children = append(children, target)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

// IsDocumentSerializerRequired reports whether a shape of kind k gets its
// own document serializer and deserializer.
func IsDocumentSerializerRequired(k shapedef.Kind) bool {
	switch k {
	case shapedef.KindMap, shapedef.KindList, shapedef.KindSet,
		shapedef.KindDocument, shapedef.KindStructure, shapedef.KindUnion:
		return true
	case shapedef.KindBoolean, shapedef.KindString, shapedef.KindByte,
		shapedef.KindShort, shapedef.KindInteger, shapedef.KindLong,
		shapedef.KindFloat, shapedef.KindDouble, shapedef.KindBigInteger,
		shapedef.KindBigDecimal, shapedef.KindBlob, shapedef.KindTimestamp,
		shapedef.KindInvalid:
		return false
	}
	return false
}

// addDocumentSeeds adds to seeds the targets of DOCUMENT and PAYLOAD bound
// members that need document support.
func addDocumentSeeds(table shapedef.BindingTable, seeds *ShapeSet) {
	for _, b := range table {
		if b.Location != shapedef.LocationDocument && b.Location != shapedef.LocationPayload {
			continue
		}
		if IsDocumentSerializerRequired(b.Target.Kind) {
			seeds.Add(b.Target.ID)
		}
	}
}
