package pgcast

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgcast/internal/anynil"
	"github.com/jackc/pgcast/internal/sanitize"
	"github.com/jackc/pgcast/pgtext"
	"github.com/shopspring/decimal"
)

// adaptFunc adapts a non-nil value to a simple type. t is the database type if one is known.
type adaptFunc func(a *Adapter, ctx context.Context, v any, t *DbType) (any, error)

// elemFunc returns the text of a non-nil array element as it must appear in an array literal.
type elemFunc func(a *Adapter, ctx context.Context, v any, t *DbType) (string, error)

var boolTrueValues = map[string]struct{}{"t": {}, "true": {}, "1": {}, "y": {}, "yes": {}, "on": {}}

var dateLiterals = map[string]struct{}{
	"current_date":      {},
	"current_time":      {},
	"current_timestamp": {},
	"localtime":         {},
	"localtimestamp":    {},
}

// Adapter converts Go values to query parameters in text format or to SQL literals. An Adapter belongs to one
// connection and is not safe for concurrent use.
type Adapter struct {
	conn  Conn
	env   *TypeEnv
	types *DbTypes // may be nil

	scalar [numSimple]adaptFunc
	elem   [numSimple]elemFunc
}

// NewAdapter creates an adapter for conn. types is the catalog used to resolve composite types given by name. It
// may be nil, in which case DefaultTypeEnv is used and composite types must be given as *DbType.
func NewAdapter(conn Conn, types *DbTypes) *Adapter {
	env := DefaultTypeEnv
	if types != nil {
		env = types.env
	}

	a := &Adapter{conn: conn, env: env, types: types}

	a.scalar = [numSimple]adaptFunc{
		SimpleText:   adaptText,
		SimpleBool:   adaptBool,
		SimpleBytea:  adaptBytea,
		SimpleDate:   adaptDate,
		SimpleFloat:  adaptNum,
		SimpleInt:    adaptNum,
		SimpleHstore: adaptHstore,
		SimpleJSON:   adaptJSON,
		SimpleNum:    adaptNum,
		SimpleMoney:  adaptNum,
		SimpleUUID:   adaptUUID,
		SimpleRecord: adaptRecord,
	}
	a.elem = [numSimple]elemFunc{
		SimpleText:   textElem,
		SimpleBool:   boolElem,
		SimpleBytea:  byteaElem,
		SimpleDate:   textElem,
		SimpleFloat:  numElem,
		SimpleInt:    numElem,
		SimpleHstore: hstoreElem,
		SimpleJSON:   jsonElem,
		SimpleNum:    numElem,
		SimpleMoney:  numElem,
		SimpleUUID:   textElem,
		SimpleRecord: recordElem,
	}

	for i := Simple(0); i < numSimple; i++ {
		if a.scalar[i] == nil || a.elem[i] == nil {
			panic(fmt.Sprintf("pgcast: no adapter for simple type %s", i))
		}
	}

	return a
}

// Adapt converts value to a query parameter of type typ. typ may be nil to guess the type from value, a type name,
// a SimpleType or a *DbType. The result is nil for NULL, a string, a Literal or value itself when it can be sent
// as is.
func (a *Adapter) Adapt(ctx context.Context, value, typ any) (any, error) {
	value = a.deref(value)
	if value == nil {
		return nil, nil
	}
	if lit, ok := value.(Literal); ok {
		return lit, nil
	}

	var st SimpleType
	var t *DbType
	var name string

	if typ == nil || typ == "" {
		st, t = a.guess(value)
		name = st.String()
	} else {
		var err error
		st, t, name, err = a.resolveType(ctx, typ)
		if err != nil {
			return nil, err
		}
	}

	if pg, ok := value.(PgStrer); ok {
		value = pg.PgStr(name)
		if anynil.Is(value) {
			return nil, nil
		}
		if lit, ok := value.(Literal); ok {
			return lit, nil
		}
	}

	if st.Array {
		if !isList(value) {
			return value, nil
		}
		base := st.Base
		var elemType *DbType
		if t != nil {
			if elemType = a.elementType(ctx, t); elemType != nil {
				base = elemType.Simple.Base
			}
		}
		return a.adaptArray(ctx, value, base, elemType)
	}

	return a.scalar[st.Base](a, ctx, value, t)
}

var pointerMethods = []reflect.Type{
	reflect.TypeOf((*PgStrer)(nil)).Elem(),
	reflect.TypeOf((*PgReprer)(nil)).Elem(),
	reflect.TypeOf((*fmt.Stringer)(nil)).Elem(),
}

// deref follows pointers to the value they refer to. A pointer to a struct is kept when its type is registered
// with RegisterSimpleType or when it implements PgStrer, PgReprer or fmt.Stringer only through pointer receivers.
func (a *Adapter) deref(value any) any {
	value = anynil.Deref(value)
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return value
	}
	if _, ok := a.env.simpleTypeOf(rv.Type()); ok {
		return value
	}
	for _, m := range pointerMethods {
		if rv.Type().Implements(m) && !rv.Type().Elem().Implements(m) {
			return value
		}
	}
	return rv.Elem().Interface()
}

// resolveType converts the typ argument of Adapt. Names that are not simple type aliases are looked up in the
// catalog so that composite types can be given by name.
func (a *Adapter) resolveType(ctx context.Context, typ any) (SimpleType, *DbType, string, error) {
	switch typ := typ.(type) {
	case SimpleType:
		return typ, nil, typ.String(), nil
	case Simple:
		return SimpleType{Base: typ}, nil, typ.String(), nil
	case *DbType:
		return typ.Simple, typ, typ.PgType, nil
	case string:
		st := ParseSimpleType(typ)
		if st.Base == SimpleText && a.types != nil && !isSimpleAlias(typ) {
			if t := a.types.Get(ctx, typ); t != nil {
				return t.Simple, t, typ, nil
			}
		}
		return st, nil, typ, nil
	default:
		return SimpleType{}, nil, "", &AdaptError{Value: typ, Msg: "invalid type specification"}
	}
}

func isSimpleAlias(name string) bool {
	if base, ok := strings.CutSuffix(name, "[]"); ok {
		name = base
	} else {
		name = strings.TrimPrefix(name, "_")
	}
	_, ok := simpleAliases[name]
	return ok
}

// elementType returns the composite type of the elements of the array type t, or nil if the elements are not
// composite. Only arrays whose element category is unknown are looked up.
func (a *Adapter) elementType(ctx context.Context, t *DbType) *DbType {
	if a.types == nil || (t.Simple.Base != SimpleText && t.Simple.Base != SimpleRecord) {
		return nil
	}
	base, ok := strings.CutPrefix(t.PgType, "_")
	if !ok || isSimpleAlias(base) {
		return nil
	}
	if elem := a.types.Get(ctx, base); elem != nil && elem.RelID != 0 {
		return elem
	}
	return nil
}

// guess returns the simple type of value. Records get a synthetic type whose fields are named by their position.
func (a *Adapter) guess(value any) (SimpleType, *DbType) {
	value = a.deref(value)
	if st, ok := a.env.simpleTypeOf(reflect.TypeOf(value)); ok {
		return st, nil
	}

	switch v := value.(type) {
	case string, []byte, Literal:
		return SimpleType{Base: SimpleText}, nil
	case bool:
		return SimpleType{Base: SimpleBool}, nil
	case decimal.Decimal:
		return SimpleType{Base: SimpleNum}, nil
	case time.Time, time.Duration:
		return SimpleType{Base: SimpleDate}, nil
	case Bytea:
		return SimpleType{Base: SimpleBytea}, nil
	case Json, *Json:
		return SimpleType{Base: SimpleJSON}, nil
	case Hstore:
		return SimpleType{Base: SimpleHstore}, nil
	case Tuple:
		return SimpleType{Base: SimpleRecord}, a.tupleType(nil, v)
	case *Record:
		return SimpleType{Base: SimpleRecord}, a.tupleType(v.typ.names, v.values)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return SimpleType{Base: SimpleText}, nil
	case reflect.Bool:
		return SimpleType{Base: SimpleBool}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return SimpleType{Base: SimpleInt}, nil
	case reflect.Float32, reflect.Float64:
		return SimpleType{Base: SimpleFloat}, nil
	case reflect.Slice:
		if st, ok := a.guessBase(rv); ok {
			return SimpleType{Base: st.Base, Array: true}, nil
		}
		return SimpleType{Base: SimpleText, Array: true}, nil
	}

	return SimpleType{Base: SimpleText}, nil
}

// guessBase guesses the element type of a possibly nested list from its first non-nil element.
func (a *Adapter) guessBase(rv reflect.Value) (SimpleType, bool) {
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() || anynil.Is(elem.Interface()) {
			continue
		}
		if isList(elem.Interface()) {
			if st, ok := a.guessBase(elem); ok {
				return st, true
			}
			continue
		}
		st, _ := a.guess(elem.Interface())
		return SimpleType{Base: st.Base}, true
	}
	return SimpleType{}, false
}

// tupleType returns a record type for values. Fields are named by names or by their one-based position.
func (a *Adapter) tupleType(names []string, values []any) *DbType {
	fieldNames := make([]string, len(values))
	fieldTypes := make([]*DbType, len(values))
	for i, v := range values {
		if i < len(names) {
			fieldNames[i] = names[i]
		} else {
			fieldNames[i] = strconv.Itoa(i + 1)
		}
		st := SimpleType{Base: SimpleText}
		if !anynil.Is(v) {
			st, _ = a.guess(v)
		}
		fieldTypes[i] = simpleDbType(st, nil)
	}
	return simpleDbType(SimpleType{Base: SimpleRecord}, newAttrDict(fieldNames, fieldTypes))
}

// isList reports whether v is adapted as an array. Byte slices are not lists.
func isList(v any) bool {
	switch v.(type) {
	case []byte, Bytea, Tuple, Hstore, Literal, string:
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func adaptText(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	return v, nil
}

func adaptBool(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	b, ok, err := truth(v)
	if err != nil || !ok {
		return nil, err
	}
	if b {
		return "t", nil
	}
	return "f", nil
}

// truth returns the boolean value of v. ok is false when v is the empty string.
func truth(v any) (b bool, ok bool, err error) {
	switch v := v.(type) {
	case bool:
		return v, true, nil
	case string:
		if v == "" {
			return false, false, nil
		}
		_, b = boolTrueValues[strings.ToLower(v)]
		return b, true, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, true, nil
	}
	return false, false, &AdaptError{Value: v, Type: "bool"}
}

func adaptDate(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return nil, nil
		}
		if _, ok := dateLiterals[strings.ToLower(s)]; ok {
			return Literal(s), nil
		}
	}
	return v, nil
}

func adaptNum(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	if s, ok := v.(string); ok && s == "" {
		return nil, nil
	}
	return v, nil
}

func adaptBytea(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	b, err := a.escapeBytea(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Adapter) escapeBytea(v any) ([]byte, error) {
	var b []byte
	switch v := v.(type) {
	case []byte:
		b = v
	case Bytea:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, &AdaptError{Value: v, Type: "bytea"}
	}
	if a.conn == nil {
		return pgtext.EscapeByteaHex(b), nil
	}
	return a.conn.EscapeBytea(b)
}

func adaptJSON(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return nil, nil
		}
		return s, nil
	}
	return a.encodeJSON(v)
}

func (a *Adapter) encodeJSON(v any) (string, error) {
	encode := a.env.jsonEncode()
	switch j := v.(type) {
	case Json:
		if j.Encode != nil {
			encode = j.Encode
		}
		v = j.Value
	case *Json:
		if j.Encode != nil {
			encode = j.Encode
		}
		v = j.Value
	}
	s, err := encode(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return s, nil
}

func adaptHstore(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return v, nil
	case Hstore:
		return v.String(), nil
	case map[string]*string:
		return pgtext.FormatHstore(v), nil
	case map[string]string:
		m := make(map[string]*string, len(v))
		for k, s := range v {
			m[k] = &s
		}
		return pgtext.FormatHstore(m), nil
	case map[string]any:
		m := make(map[string]*string, len(v))
		for k, val := range v {
			if val = a.deref(val); val != nil {
				s := textOf(val)
				m[k] = &s
			} else {
				m[k] = nil
			}
		}
		return pgtext.FormatHstore(m), nil
	}
	return nil, &AdaptError{Value: v, Type: "hstore"}
}

func adaptUUID(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return nil, nil
		}
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, &AdaptError{Value: v, Type: "uuid"}
}

func adaptRecord(a *Adapter, ctx context.Context, v any, t *DbType) (any, error) {
	var values []any
	var names []string
	switch r := v.(type) {
	case Tuple:
		values = r
	case []any:
		values = r
	case *Record:
		values = r.values
		names = r.typ.names
	default:
		return v, nil
	}
	return a.recordLiteral(ctx, values, names, t)
}

// recordLiteral returns the record literal of values. Each field is adapted to the type of the field at the same
// position of t.
func (a *Adapter) recordLiteral(ctx context.Context, values []any, names []string, t *DbType) (string, error) {
	var attnames *AttrDict
	if t != nil {
		var err error
		attnames, err = t.Attnames(ctx)
		if err != nil {
			return "", err
		}
	}
	if attnames == nil {
		attnames = a.tupleType(names, values).attnames
	}
	if attnames.Len() != len(values) {
		typeName := "record"
		if t != nil {
			typeName = t.PgType
		}
		return "", &RecordSizeError{Type: typeName, Want: attnames.Len(), Got: len(values)}
	}

	var sb strings.Builder
	sb.WriteByte('(')
	for i, ft := range attnames.Types() {
		if i > 0 {
			sb.WriteByte(',')
		}
		fv, err := a.Adapt(ctx, values[i], ft)
		if err != nil {
			return "", err
		}
		if fv == nil {
			continue
		}
		sb.WriteString(pgtext.QuoteRecordField(textOf(fv)))
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

// adaptArray returns the array literal of the list v whose elements have the simple type base.
func (a *Adapter) adaptArray(ctx context.Context, v any, base Simple, t *DbType) (string, error) {
	var sb strings.Builder
	if err := a.appendArray(ctx, &sb, reflect.ValueOf(v), base, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (a *Adapter) appendArray(ctx context.Context, sb *strings.Builder, rv reflect.Value, base Simple, t *DbType) error {
	sb.WriteByte('{')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}

		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() || anynil.Is(elem.Interface()) {
			sb.WriteString("null")
			continue
		}

		v := a.deref(elem.Interface())
		if v == nil {
			sb.WriteString("null")
			continue
		}
		if isList(v) {
			if err := a.appendArray(ctx, sb, elem, base, t); err != nil {
				return err
			}
			continue
		}

		s, err := a.elem[base](a, ctx, v, t)
		if err != nil {
			return err
		}
		sb.WriteString(s)
	}
	sb.WriteByte('}')
	return nil
}

func textElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	return pgtext.QuoteArrayElement(textOf(v)), nil
}

func boolElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	b, ok, err := truth(v)
	if err != nil {
		return "", err
	}
	switch {
	case !ok:
		return "null", nil
	case b:
		return "t", nil
	default:
		return "f", nil
	}
}

func numElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	s := textOf(v)
	if s == "" {
		return "null", nil
	}
	return s, nil
}

func byteaElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	b, err := a.escapeBytea(v)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(b), `\`, `\\`), nil
}

func jsonElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	s, ok := v.(string)
	if !ok {
		var err error
		if s, err = a.encodeJSON(v); err != nil {
			return "", err
		}
	}
	if s == "" {
		return "null", nil
	}
	return pgtext.QuoteArrayElement(s), nil
}

func hstoreElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	s, err := adaptHstore(a, ctx, v, t)
	if err != nil || s == nil {
		return "null", err
	}
	return pgtext.QuoteArrayElement(s.(string)), nil
}

func recordElem(a *Adapter, ctx context.Context, v any, t *DbType) (string, error) {
	s, err := adaptRecord(a, ctx, v, t)
	if err != nil {
		return "", err
	}
	return pgtext.QuoteArrayElement(textOf(s)), nil
}

// textOf returns the text representation PostgreSQL accepts for an adapted value.
func textOf(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case Literal:
		return string(v)
	case bool:
		if v {
			return "t"
		}
		return "f"
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case time.Time:
		return formatTime(v)
	case time.Duration:
		return formatInterval(v)
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits())
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.999999-07:00")
}

// formatInterval returns d in the hours:minutes:seconds form of interval input.
func formatInterval(d time.Duration) string {
	var sb strings.Builder
	if d < 0 {
		sb.WriteByte('-')
		d = -d
	}
	us := d.Microseconds()
	fmt.Fprintf(&sb, "%02d:%02d:%02d", us/3_600_000_000, us/60_000_000%60, us/1_000_000%60)
	if frac := us % 1_000_000; frac != 0 {
		fmt.Fprintf(&sb, ".%06d", frac)
	}
	return sb.String()
}

// AdaptInline returns value as a SQL literal that can be embedded into a query. Lists become ARRAY constructors,
// or bracketed lists when nested is set. Values that cannot be inlined are reported as *AdaptError.
func (a *Adapter) AdaptInline(ctx context.Context, value any, nested bool) (string, error) {
	value = a.deref(value)
	if value == nil {
		return "NULL", nil
	}

	switch v := value.(type) {
	case Literal:
		return string(v), nil
	case string:
		return a.quote(v)
	case []byte:
		return a.quote(string(v))
	case Bytea:
		b, err := a.escapeBytea(v)
		if err != nil {
			return "", err
		}
		return a.quote(string(b))
	case time.Time:
		return a.quote(formatTime(v))
	case time.Duration:
		return a.quote(formatInterval(v))
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case float32:
		return inlineFloat(float64(v), 32), nil
	case float64:
		return inlineFloat(v, 64), nil
	case decimal.Decimal:
		return v.String(), nil
	case Tuple:
		return a.inlineTuple(ctx, v)
	case *Record:
		return a.inlineTuple(ctx, v.values)
	case Json, *Json:
		s, err := a.encodeJSON(v)
		if err != nil {
			return "", err
		}
		q, err := a.quote(s)
		if err != nil {
			return "", err
		}
		return q + "::json", nil
	case Hstore:
		q, err := a.quote(v.String())
		if err != nil {
			return "", err
		}
		return q + "::hstore", nil
	case PgReprer:
		r := v.PgRepr()
		if s, ok := r.(string); ok {
			return s, nil
		}
		return a.AdaptInline(ctx, r, false)
	}

	if st, ok := a.env.simpleTypeOf(reflect.TypeOf(value)); ok && !st.Array {
		if s, ok := value.(fmt.Stringer); ok {
			switch st.Base {
			case SimpleUUID:
				return a.quote(s.String())
			case SimpleNum:
				return inlineNumber(s.String()), nil
			}
		}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return a.quote(rv.String())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return inlineFloat(rv.Float(), 64), nil
	case reflect.Slice:
		return a.inlineList(ctx, rv, nested)
	}

	return "", &AdaptError{Value: value}
}

func (a *Adapter) quote(s string) (string, error) {
	if a.conn == nil {
		return string(sanitize.QuoteString(nil, s)), nil
	}
	escaped, err := a.conn.EscapeString(s)
	if err != nil {
		return "", err
	}
	return "'" + escaped + "'", nil
}

// inlineNumber quotes the special values NaN and Infinity that are not numeric literals.
func inlineNumber(s string) string {
	if strings.ContainsAny(s, "0123456789") {
		return s
	}
	return "'" + s + "'"
}

func inlineFloat(f float64, bitSize int) string {
	s := formatFloat(f, bitSize)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "'" + s + "'"
	}
	return s
}

func (a *Adapter) inlineList(ctx context.Context, rv reflect.Value, nested bool) (string, error) {
	var sb strings.Builder
	if nested {
		sb.WriteByte('[')
	} else {
		sb.WriteString("ARRAY[")
	}
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		s, err := a.AdaptInline(ctx, rv.Index(i).Interface(), true)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

func (a *Adapter) inlineTuple(ctx context.Context, values []any) (string, error) {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		s, err := a.AdaptInline(ctx, v, false)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

// ParamList collects the parameters of a query.
type ParamList struct {
	adapter *Adapter
	values  []any
}

// ParameterList returns an empty parameter list that adapts values with a.
func (a *Adapter) ParameterList() *ParamList {
	return &ParamList{adapter: a}
}

// Add adapts value to typ and returns the placeholder to use in the query. Values adapted to a Literal are not
// added and the literal is returned instead.
func (p *ParamList) Add(ctx context.Context, value, typ any) (string, error) {
	v, err := p.adapter.Adapt(ctx, value, typ)
	if err != nil {
		return "", err
	}
	if lit, ok := v.(Literal); ok {
		return string(lit), nil
	}
	p.values = append(p.values, v)
	return "$" + strconv.Itoa(len(p.values)), nil
}

// Values returns the collected parameters in placeholder order.
func (p *ParamList) Values() []any {
	return p.values
}

func (p *ParamList) Len() int {
	return len(p.values)
}
