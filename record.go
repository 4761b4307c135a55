package pgcast

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgcast/internal/lru"
)

// DefaultRowCacheSize is the number of record types DefaultRowFactory keeps.
const DefaultRowCacheSize = 1024

// RecordType describes records with a fixed list of field names.
type RecordType struct {
	names []string
	index map[string]int
}

func newRecordType(names []string) *RecordType {
	rt := &RecordType{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := rt.index[name]; name == "" || dup {
			name = "_" + strconv.Itoa(i)
		}
		rt.names[i] = name
		rt.index[name] = i
	}
	return rt
}

// Names returns the field names. Empty and duplicate names are replaced by an underscore followed by the field
// index.
func (rt *RecordType) Names() []string {
	return append([]string(nil), rt.names...)
}

// Len returns the number of fields.
func (rt *RecordType) Len() int {
	return len(rt.names)
}

// New returns a record of type rt. values must have one element per field.
func (rt *RecordType) New(values []any) (*Record, error) {
	if len(values) != len(rt.names) {
		return nil, &RecordSizeError{Type: "(" + strings.Join(rt.names, ",") + ")", Want: len(rt.names), Got: len(values)}
	}
	return &Record{typ: rt, values: values}, nil
}

// Record is a row or composite value with ordered, named fields.
type Record struct {
	typ    *RecordType
	values []any
}

// Type returns the record type.
func (r *Record) Type() *RecordType {
	return r.typ
}

func (r *Record) Len() int {
	return len(r.values)
}

// At returns the value of the i-th field.
func (r *Record) At(i int) any {
	return r.values[i]
}

// Get returns the value of the named field.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Values returns the field values in order.
func (r *Record) Values() []any {
	return append([]any(nil), r.values...)
}

// Map returns the fields as a map from name to value.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, name := range r.typ.names {
		m[name] = r.values[i]
	}
	return m
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, name := range r.typ.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", name, r.values[i])
	}
	sb.WriteByte(')')
	return sb.String()
}

// RowFactory creates record types and caches them by their field names. It is safe for concurrent use.
type RowFactory struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *RecordType]
}

// DefaultRowFactory is shared by all connections that are not given their own factory.
var DefaultRowFactory = NewRowFactory(DefaultRowCacheSize)

// NewRowFactory creates a RowFactory that keeps at most size record types. A size of zero or less means no limit.
func NewRowFactory(size int) *RowFactory {
	return &RowFactory{cache: lru.New[string, *RecordType](size)}
}

// Type returns the record type for names. The same *RecordType is returned for the same names as long as it stays
// in the cache.
func (f *RowFactory) Type(names []string) *RecordType {
	key := strconv.Itoa(len(names)) + "\x00" + strings.Join(names, "\x00")

	f.mu.Lock()
	defer f.mu.Unlock()

	if rt, ok := f.cache.Get(key); ok {
		return rt
	}
	rt := newRecordType(names)
	f.cache.Put(key, rt)
	return rt
}

// Clear removes all cached record types.
func (f *RowFactory) Clear() {
	f.mu.Lock()
	f.cache.Clear()
	f.mu.Unlock()
}

// Resize changes the maximum number of cached record types.
func (f *RowFactory) Resize(size int) {
	f.mu.Lock()
	f.cache.Resize(size)
	f.mu.Unlock()
}

// Len returns the number of cached record types.
func (f *RowFactory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.Len()
}
