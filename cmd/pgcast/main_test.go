package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PGCAST_DATABASE", "")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCastCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"int", []string{"cast", "int4", "42", "7"}, "42\n7\n"},
		{"array", []string{"cast", "_int4", "{1,2,NULL}"}, "[1 2 NULL]\n"},
		{"bool", []string{"cast", "bool", "t"}, "true\n"},
		{"raw bool", []string{"cast", "--raw-bool", "bool", "t"}, "t\n"},
		{"date style", []string{"cast", "--datestyle", "German, DMY", "date", "24.12.2023"}, "2023-12-24 00:00:00 +0000 UTC\n"},
		{"money", []string{"cast", "--decimal-point", ",", "money", "34,25 €"}, "34.25\n"},
		{"unknown type", []string{"cast", "nosuchtype", "xyz"}, "xyz\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCastCommandMalformed(t *testing.T) {
	_, err := run(t, "cast", "int4", "forty-two")
	require.Error(t, err)
}

func TestAdaptCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"guessed", []string{"adapt", "42", `"a b"`, "true", "null"}, "42\na b\nt\nNULL\n"},
		{"array", []string{"adapt", "[1,2,3]"}, "{1,2,3}\n"},
		{"typed array", []string{"adapt", "--type", "text[]", `["a","b c"]`}, "{a,\"b c\"}\n"},
		{"json", []string{"adapt", `{"a":1}`}, "{\"a\":1}\n"},
		{"not json", []string{"adapt", "hello world"}, "hello world\n"},
		{"inline", []string{"adapt", "--inline", "it's", "1.5", "[1,2]"}, "'it''s'\n1.5\nARRAY[1,2]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"positional", []string{"format", "select %s, %s", "1", "x"}, "select $1, $2\n$1 = 1\n$2 = x\n"},
		{"typed", []string{"format", "--types", "int text", "select %s, %s", `""`, "x"}, "select $1, $2\n$1 = NULL\n$2 = x\n"},
		{"named", []string{"format", "--named", `{"id": 7}`, "select * from t where id = %(id)s"}, "select * from t where id = $1\n$1 = 7\n"},
		{"inline", []string{"format", "--inline", "select %s", "it's"}, "select 'it''s'\n"},
		{"no values", []string{"format", "select 100%"}, "select 100%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommandErrors(t *testing.T) {
	_, err := run(t, "format", "--inline", "--types", "int", "select %s", "1")
	assert.Error(t, err)

	_, err = run(t, "format", "--named", `{"a": 1}`, "select %(a)s", "2")
	assert.Error(t, err)

	_, err = run(t, "format", "select %s, %s", "1")
	assert.Error(t, err)
}

func TestQueryCommandOffline(t *testing.T) {
	_, err := run(t, "query", "select 1")
	assert.ErrorIs(t, err, errOffline)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "cast", "int4", "1")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "pgcast.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("datestyle: SQL, DMY\ndecimal_point: \",\"\nraw_json: true\n"), 0o644))

	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig("", nil)
		require.NoError(t, err)
		assert.Equal(t, "ISO, MDY", cfg.DateStyle)
		assert.Equal(t, ".", cfg.DecimalPoint)
		assert.Equal(t, "none", cfg.LogLevel)
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := loadConfig(cfgFile, nil)
		require.NoError(t, err)
		assert.Equal(t, "SQL, DMY", cfg.DateStyle)
		assert.Equal(t, ",", cfg.DecimalPoint)
		assert.True(t, cfg.RawJSON)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PGCAST_DECIMAL_POINT", ".")
		t.Setenv("PGCAST_RAW_BOOL", "true")
		cfg, err := loadConfig(cfgFile, nil)
		require.NoError(t, err)
		assert.Equal(t, ".", cfg.DecimalPoint)
		assert.True(t, cfg.RawBool)
		assert.Equal(t, "SQL, DMY", cfg.DateStyle)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("PGCAST_DATESTYLE", "Postgres, MDY")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("datestyle", "", "")
		flags.String("log-level", "", "")
		require.NoError(t, flags.Parse([]string{"--datestyle", "German, DMY", "--log-level", "debug"}))

		cfg, err := loadConfig(cfgFile, flags)
		require.NoError(t, err)
		assert.Equal(t, "German, DMY", cfg.DateStyle)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(dir, "missing.yaml"), nil)
		assert.Error(t, err)
	})
}
