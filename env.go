package pgcast

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// Config configures a TypeEnv.
type Config struct {
	// DecimalPoint is the decimal point of money values as formatted by the server's lc_monetary locale.
	DecimalPoint string

	// RawBool makes bool values returned as "t" or "f" instead of Go bools.
	RawBool bool

	// RawJSON makes json and jsonb values returned as strings instead of being decoded with JSONDecode.
	RawJSON bool

	// Decimal constructs numeric and money values from their text. The default returns a decimal.Decimal.
	Decimal func(string) (any, error)

	// JSONDecode and JSONEncode convert json values. The defaults use encoding/json.
	JSONDecode func(string) (any, error)
	JSONEncode func(any) (string, error)

	Logger   Logger
	LogLevel LogLevel
}

// DefaultConfig returns the configuration of DefaultTypeEnv.
func DefaultConfig() Config {
	return Config{
		DecimalPoint: ".",
		Decimal:      castDecimal,
		JSONDecode:   jsonDecode,
		JSONEncode:   jsonEncode,
	}
}

// TypeEnv holds the process-wide defaults that connections start from: the default casts, the money and numeric
// settings, the JSON codec and the Go types that are known to map to a simple type. A TypeEnv is safe for
// concurrent use.
type TypeEnv struct {
	mu sync.RWMutex

	decimalPoint string
	castBool     bool
	castJSON     bool
	decimalFn    func(string) (any, error)
	jsonDecodeFn func(string) (any, error)
	jsonEncodeFn func(any) (string, error)
	logger       Logger
	logLevel     LogLevel

	casts       map[string]any
	simpleTypes map[reflect.Type]SimpleType
}

// DefaultTypeEnv is used by the package level functions and by connections that are not given an environment.
var DefaultTypeEnv = NewTypeEnv(DefaultConfig())

// NewTypeEnv creates a TypeEnv with the built-in casts. Zero values in config are replaced by the defaults.
func NewTypeEnv(config Config) *TypeEnv {
	defaults := DefaultConfig()
	if config.DecimalPoint == "" {
		config.DecimalPoint = defaults.DecimalPoint
	}
	if config.Decimal == nil {
		config.Decimal = defaults.Decimal
	}
	if config.JSONDecode == nil {
		config.JSONDecode = defaults.JSONDecode
	}
	if config.JSONEncode == nil {
		config.JSONEncode = defaults.JSONEncode
	}
	if config.Logger != nil && config.LogLevel == 0 {
		config.LogLevel = LogLevelDebug
	}

	env := &TypeEnv{
		decimalPoint: config.DecimalPoint,
		castBool:     !config.RawBool,
		castJSON:     !config.RawJSON,
		decimalFn:    config.Decimal,
		jsonDecodeFn: config.JSONDecode,
		jsonEncodeFn: config.JSONEncode,
		logger:       config.Logger,
		logLevel:     config.LogLevel,
	}
	env.casts = builtinCasts(env)
	env.simpleTypes = builtinSimpleTypes()

	return env
}

func builtinSimpleTypes() map[reflect.Type]SimpleType {
	m := make(map[reflect.Type]SimpleType)
	add := func(st SimpleType, values ...any) {
		for _, v := range values {
			m[reflect.TypeOf(v)] = st
		}
	}

	add(SimpleType{Base: SimpleText}, "", []byte(nil))
	add(SimpleType{Base: SimpleBool}, false)
	add(SimpleType{Base: SimpleInt}, 0, int8(0), int16(0), int32(0), int64(0), uint(0), uint8(0), uint16(0), uint32(0), uint64(0))
	add(SimpleType{Base: SimpleFloat}, float32(0), float64(0))
	add(SimpleType{Base: SimpleNum}, decimal.Decimal{})
	add(SimpleType{Base: SimpleDate}, time.Time{}, time.Duration(0))
	add(SimpleType{Base: SimpleBytea}, Bytea(nil))
	add(SimpleType{Base: SimpleJSON}, Json{})
	add(SimpleType{Base: SimpleHstore}, Hstore(nil))
	add(SimpleType{Base: SimpleUUID}, uuid.UUID{})

	add(SimpleType{Base: SimpleText, Array: true}, []string(nil), [][]byte(nil))
	add(SimpleType{Base: SimpleBool, Array: true}, []bool(nil))
	add(SimpleType{Base: SimpleInt, Array: true}, []int(nil), []int16(nil), []int32(nil), []int64(nil))
	add(SimpleType{Base: SimpleFloat, Array: true}, []float32(nil), []float64(nil))
	add(SimpleType{Base: SimpleNum, Array: true}, []decimal.Decimal(nil))
	add(SimpleType{Base: SimpleDate, Array: true}, []time.Time(nil))

	return m
}

// RegisterSimpleType makes the Adapter treat values of the same Go type as value as st when no database type is
// given.
func (env *TypeEnv) RegisterSimpleType(value any, st SimpleType) {
	env.mu.Lock()
	env.simpleTypes[reflect.TypeOf(value)] = st
	env.mu.Unlock()
}

func (env *TypeEnv) simpleTypeOf(t reflect.Type) (SimpleType, bool) {
	env.mu.RLock()
	st, ok := env.simpleTypes[t]
	env.mu.RUnlock()
	return st, ok
}

// DecimalPoint returns the decimal point used to parse money values.
func (env *TypeEnv) DecimalPoint() string {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.decimalPoint
}

// SetDecimalPoint sets the decimal point used to parse money values. The empty string restores ".".
func (env *TypeEnv) SetDecimalPoint(point string) {
	if point == "" {
		point = "."
	}
	env.mu.Lock()
	env.decimalPoint = point
	env.mu.Unlock()
}

// CastBool reports whether bool values are cast to Go bools.
func (env *TypeEnv) CastBool() bool {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.castBool
}

// SetCastBool sets whether bool values are cast to Go bools.
func (env *TypeEnv) SetCastBool(on bool) {
	env.mu.Lock()
	env.castBool = on
	env.mu.Unlock()
}

// CastJSON reports whether json values are decoded.
func (env *TypeEnv) CastJSON() bool {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.castJSON
}

// SetCastJSON sets whether json values are decoded.
func (env *TypeEnv) SetCastJSON(on bool) {
	env.mu.Lock()
	env.castJSON = on
	env.mu.Unlock()
}

// SetDecimal sets the numeric constructor. nil restores the default.
func (env *TypeEnv) SetDecimal(fn func(string) (any, error)) {
	if fn == nil {
		fn = castDecimal
	}
	env.mu.Lock()
	env.decimalFn = fn
	env.mu.Unlock()
}

// SetJSONDecode sets the json decoder. nil restores the default.
func (env *TypeEnv) SetJSONDecode(fn func(string) (any, error)) {
	if fn == nil {
		fn = jsonDecode
	}
	env.mu.Lock()
	env.jsonDecodeFn = fn
	env.mu.Unlock()
}

// SetJSONEncode sets the json encoder used by the Adapter. nil restores the default.
func (env *TypeEnv) SetJSONEncode(fn func(any) (string, error)) {
	if fn == nil {
		fn = jsonEncode
	}
	env.mu.Lock()
	env.jsonEncodeFn = fn
	env.mu.Unlock()
}

// SetLogger sets the logger and the maximum level that is logged.
func (env *TypeEnv) SetLogger(logger Logger, level LogLevel) {
	env.mu.Lock()
	env.logger = logger
	env.logLevel = level
	env.mu.Unlock()
}

func (env *TypeEnv) decimal() func(string) (any, error) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.decimalFn
}

func (env *TypeEnv) jsonDecode() func(string) (any, error) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.jsonDecodeFn
}

func (env *TypeEnv) jsonEncode() func(any) (string, error) {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.jsonEncodeFn
}

// GetTypecast returns the default cast for the database type name. The result is a CastFunc, a ConnCastFunc or nil.
func (env *TypeEnv) GetTypecast(name string) any {
	env.mu.RLock()
	defer env.mu.RUnlock()
	return env.casts[name]
}

// SetTypecast sets the default cast for the given database type names. fn must be a CastFunc, a ConnCastFunc or a
// function with the signature of either. A nil fn removes the default. The default for the array types of names is
// removed as well so that it is derived from the new cast.
func (env *TypeEnv) SetTypecast(fn any, names ...string) error {
	cast, err := castFuncOf(fn)
	if err != nil {
		return err
	}

	env.mu.Lock()
	for _, name := range names {
		if cast == nil {
			delete(env.casts, name)
		} else {
			env.casts[name] = cast
		}
		delete(env.casts, "_"+name)
	}
	env.mu.Unlock()

	env.log(context.Background(), LogLevelDebug, "default typecast set", map[string]any{"types": names, "removed": cast == nil})
	return nil
}

// ResetTypecast restores the built-in default casts for names, or for all types when no names are given.
func (env *TypeEnv) ResetTypecast(names ...string) {
	builtins := builtinCasts(env)

	env.mu.Lock()
	if len(names) == 0 {
		env.casts = builtins
	} else {
		for _, name := range names {
			if cast, ok := builtins[name]; ok {
				env.casts[name] = cast
			} else {
				delete(env.casts, name)
			}
		}
	}
	env.mu.Unlock()
}

// GetTypecast returns the default cast for name in DefaultTypeEnv.
func GetTypecast(name string) any {
	return DefaultTypeEnv.GetTypecast(name)
}

// SetTypecast sets the default cast for names in DefaultTypeEnv.
func SetTypecast(fn any, names ...string) error {
	return DefaultTypeEnv.SetTypecast(fn, names...)
}

// ResetTypecast restores the built-in default casts in DefaultTypeEnv.
func ResetTypecast(names ...string) {
	DefaultTypeEnv.ResetTypecast(names...)
}
