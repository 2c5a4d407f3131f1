package shapedef

// Kind is the closed set of shape types. Switches over Kind list every
// constant and treat anything else as an error.
type Kind int

const (
	KindInvalid Kind = iota

	KindBoolean
	KindString
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindBigInteger
	KindBigDecimal
	KindBlob
	KindTimestamp
	KindList
	KindSet
	KindMap
	KindStructure
	KindUnion
	KindDocument

	// KindTotal is the number of kinds defined, KindInvalid included.
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBoolean:    "boolean",
	KindString:     "string",
	KindByte:       "byte",
	KindShort:      "short",
	KindInteger:    "integer",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindBigInteger: "bigInteger",
	KindBigDecimal: "bigDecimal",
	KindBlob:       "blob",
	KindTimestamp:  "timestamp",
	KindList:       "list",
	KindSet:        "set",
	KindMap:        "map",
	KindStructure:  "structure",
	KindUnion:      "union",
	KindDocument:   "document",
}

// String returns the schema type name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// KindFromString is the inverse of Kind.String. Unknown names yield
// KindInvalid.
func KindFromString(s string) Kind {
	for k, name := range kindNames {
		if name == s && Kind(k) != KindInvalid {
			return Kind(k)
		}
	}
	return KindInvalid
}

// IsCollection reports whether k is a list or set.
func (k Kind) IsCollection() bool {
	return k == KindList || k == KindSet
}

// IsAggregate reports whether k contains other shapes.
func (k Kind) IsAggregate() bool {
	switch k {
	case KindList, KindSet, KindMap, KindStructure, KindUnion, KindDocument:
		return true
	}
	return false
}

// Location is where a member's value travels on the wire.
type Location int

const (
	LocationNone Location = iota
	LocationHeader
	LocationPrefixHeaders
	LocationLabel
	LocationQuery
	LocationPayload
	LocationDocument
)

func (l Location) String() string {
	switch l {
	case LocationHeader:
		return "HEADER"
	case LocationPrefixHeaders:
		return "PREFIX_HEADERS"
	case LocationLabel:
		return "LABEL"
	case LocationQuery:
		return "QUERY"
	case LocationPayload:
		return "PAYLOAD"
	case LocationDocument:
		return "DOCUMENT"
	}
	return "NONE"
}

// IsRest reports whether l is handled by the REST binding functions rather
// than the document codec.
func (l Location) IsRest() bool {
	switch l {
	case LocationHeader, LocationPrefixHeaders, LocationLabel, LocationQuery:
		return true
	}
	return false
}

// TimestampFormat names a timestamp wire format. Values that are none of the
// constants below are kept as written and rejected when code is generated.
type TimestampFormat string

const (
	FormatUnset        TimestampFormat = ""
	FormatDateTime     TimestampFormat = "date-time"
	FormatHTTPDate     TimestampFormat = "http-date"
	FormatEpochSeconds TimestampFormat = "epoch-seconds"
)
