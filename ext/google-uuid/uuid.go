// Package uuid makes pgcast cast uuid values to github.com/google/uuid.UUID and adapt them as parameters.
package uuid

import (
	"github.com/google/uuid"
	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/pgtext"
)

// Register replaces the uuid cast of env and makes uuid.UUID values adapt as uuid.
func Register(env *pgcast.TypeEnv) error {
	if err := env.SetTypecast(pgcast.CastFunc(CastUUID), "uuid"); err != nil {
		return err
	}
	env.RegisterSimpleType(uuid.UUID{}, pgcast.SimpleType{Base: pgcast.SimpleUUID})
	env.RegisterSimpleType([]uuid.UUID(nil), pgcast.SimpleType{Base: pgcast.SimpleUUID, Array: true})
	return nil
}

// CastUUID parses the text of a uuid value.
func CastUUID(s string) (any, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return nil, &pgtext.ParseError{Type: "uuid", Text: s, Err: err}
	}
	return u, nil
}
