package pgcast_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgcast"
	"github.com/jackc/pgcast/internal/testconn"
)

type testLog struct {
	lvl  pgcast.LogLevel
	msg  string
	data map[string]any
}

type testLogger struct {
	logs []testLog

	mux sync.Mutex
}

func (l *testLogger) Log(ctx context.Context, level pgcast.LogLevel, msg string, data map[string]any) {
	l.mux.Lock()
	defer l.mux.Unlock()

	l.logs = append(l.logs, testLog{lvl: level, msg: msg, data: data})
}

func (l *testLogger) FilterByMsg(msg string) (res []testLog) {
	l.mux.Lock()
	defer l.mux.Unlock()

	for _, log := range l.logs {
		if log.msg == msg {
			res = append(res, log)
		}
	}

	return res
}

// newTestTypes returns a catalog over a scripted connection with its own environment so that tests can change
// defaults without affecting each other.
func newTestTypes(t testing.TB) (*pgcast.DbTypes, *testconn.Conn) {
	t.Helper()
	conn := testconn.New()
	env := pgcast.NewTypeEnv(pgcast.DefaultConfig())
	return pgcast.NewDbTypes(conn, env), conn
}

func strPtr(s string) *string {
	return &s
}
