package httpbinding

import (
	"github.com/Unity-Technologies/restbind/shapedef"
)

// Placement is the wire strategy for one REST-bound member.
type Placement int

const (
	PlacementInvalid Placement = iota
	// PlacementHeader writes one header value.
	PlacementHeader
	// PlacementHeaderList writes one header entry per element under the same
	// name, in element order.
	PlacementHeaderList
	// PlacementPrefixHeaders writes one header named prefix+key per map
	// entry.
	PlacementPrefixHeaders
	// PlacementPrefixHeadersList writes one header per element of each map
	// value, named prefix+key.
	PlacementPrefixHeadersList
	// PlacementLabel substitutes the value into the URI template.
	PlacementLabel
	// PlacementQuery writes one query parameter.
	PlacementQuery
	// PlacementQueryList repeats the query parameter per element, in element
	// order.
	PlacementQueryList
)

var placementNames = [...]string{
	PlacementInvalid:           "invalid",
	PlacementHeader:            "header",
	PlacementHeaderList:        "header list",
	PlacementPrefixHeaders:     "prefix headers",
	PlacementPrefixHeadersList: "prefix headers list",
	PlacementLabel:             "label",
	PlacementQuery:             "query",
	PlacementQueryList:         "query list",
}

func (p Placement) String() string {
	if p < 0 || int(p) >= len(placementNames) {
		return "invalid"
	}
	return placementNames[p]
}

// Classify maps a REST binding to its request placement.
func Classify(model *shapedef.Model, b *shapedef.Binding) (Placement, error) {
	switch b.Location {
	case shapedef.LocationHeader:
		if b.Target.Kind.IsCollection() {
			return PlacementHeaderList, nil
		}
		return PlacementHeader, nil
	case shapedef.LocationPrefixHeaders:
		if b.Target.Kind != shapedef.KindMap {
			return PlacementInvalid, &shapedef.CodegenError{Shape: b.Member.ID, Msg: "prefix headers must target a map shape, found " + b.Target.Kind.String()}
		}
		value, err := memberTarget(model, b.Target, "value")
		if err != nil {
			return PlacementInvalid, err
		}
		if value.Kind.IsCollection() {
			return PlacementPrefixHeadersList, nil
		}
		return PlacementPrefixHeaders, nil
	case shapedef.LocationLabel:
		if b.Target.Kind.IsAggregate() {
			return PlacementInvalid, &shapedef.CodegenError{Shape: b.Member.ID, Msg: "label must target a scalar shape, found " + b.Target.Kind.String()}
		}
		return PlacementLabel, nil
	case shapedef.LocationQuery:
		if b.Target.Kind.IsCollection() {
			return PlacementQueryList, nil
		}
		return PlacementQuery, nil
	}
	return PlacementInvalid, &shapedef.CodegenError{Shape: b.Member.ID, Msg: "unexpected http binding found at " + b.Location.String()}
}

// ClassifyResponse maps a REST binding of a response or error shape to its
// placement. Only header placements can be read back from a response.
func ClassifyResponse(model *shapedef.Model, b *shapedef.Binding) (Placement, error) {
	switch b.Location {
	case shapedef.LocationHeader, shapedef.LocationPrefixHeaders:
		return Classify(model, b)
	}
	return PlacementInvalid, &shapedef.CodegenError{Shape: b.Member.ID, Msg: "unexpected http binding found at " + b.Location.String()}
}
