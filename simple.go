package pgcast

import "strings"

// Simple is a coarse-grained type category used to pick adapters and casts.
type Simple uint8

const (
	SimpleText Simple = iota
	SimpleBool
	SimpleBytea
	SimpleDate
	SimpleFloat
	SimpleInt
	SimpleHstore
	SimpleJSON
	SimpleNum
	SimpleMoney
	SimpleUUID
	SimpleRecord

	numSimple
)

var simpleNames = [numSimple]string{
	SimpleText:   "text",
	SimpleBool:   "bool",
	SimpleBytea:  "bytea",
	SimpleDate:   "date",
	SimpleFloat:  "float",
	SimpleInt:    "int",
	SimpleHstore: "hstore",
	SimpleJSON:   "json",
	SimpleNum:    "num",
	SimpleMoney:  "money",
	SimpleUUID:   "uuid",
	SimpleRecord: "record",
}

func (s Simple) String() string {
	if s >= numSimple {
		return "text"
	}
	return simpleNames[s]
}

// SimpleType is a Simple category or an array of one.
type SimpleType struct {
	Base  Simple
	Array bool
}

func (st SimpleType) String() string {
	if st.Array {
		return st.Base.String() + "[]"
	}
	return st.Base.String()
}

// simpleAliases maps database type names to their category.
var simpleAliases = map[string]Simple{
	"bool":        SimpleBool,
	"bytea":       SimpleBytea,
	"date":        SimpleDate,
	"interval":    SimpleDate,
	"time":        SimpleDate,
	"timetz":      SimpleDate,
	"timestamp":   SimpleDate,
	"timestamptz": SimpleDate,
	"abstime":     SimpleDate,
	"reltime":     SimpleDate,
	"datetime":    SimpleDate,
	"timedelta":   SimpleDate,
	"float":       SimpleFloat,
	"float4":      SimpleFloat,
	"float8":      SimpleFloat,
	"int":         SimpleInt,
	"cid":         SimpleInt,
	"int2":        SimpleInt,
	"int4":        SimpleInt,
	"int8":        SimpleInt,
	"oid":         SimpleInt,
	"xid":         SimpleInt,
	"hstore":      SimpleHstore,
	"json":        SimpleJSON,
	"jsonb":       SimpleJSON,
	"uuid":        SimpleUUID,
	"num":         SimpleNum,
	"numeric":     SimpleNum,
	"money":       SimpleMoney,
	"record":      SimpleRecord,
	"text":        SimpleText,
	"bpchar":      SimpleText,
	"char":        SimpleText,
	"name":        SimpleText,
	"varchar":     SimpleText,
}

// ParseSimpleType returns the simple type for a database type name. Array types may be given by their internal
// name (_int4) or with a [] suffix (int[]). Unknown names are text.
func ParseSimpleType(name string) SimpleType {
	var st SimpleType
	if strings.HasSuffix(name, "[]") {
		name = name[:len(name)-2]
		st.Array = true
	} else if strings.HasPrefix(name, "_") {
		name = name[1:]
		st.Array = true
	}
	st.Base = simpleAliases[name]
	return st
}
