package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameInitializer requires a "name" option.
type nameInitializer struct{}

func (nameInitializer) FromGenesis(opts lockbox.Options, db lockbox.KVStore) error {
	var name string
	if err := opts.ReadOptions("name", &name); err != nil {
		return err
	}
	if name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return db.Set([]byte("name"), []byte(name))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "lockbox-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	valid := write("valid.json", `{"app_state": {"name": "lockbox"}}`)
	empty := write("empty.json", `{"app_state": {"name": ""}}`)
	broken := write("broken.json", `{"app_state": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid": {
			paths: []string{valid},
		},
		"invalid state": {
			paths:   []string{valid, empty},
			wantErr: errors.ErrEmpty,
		},
		"broken file": {
			paths:   []string{broken},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(nameInitializer{}, tc.paths)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}

	err = ValidateGenesis(nameInitializer{}, []string{filepath.Join(dir, "missing.json")})
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	addr, debug, err := parseFlags([]string{"-bind", "tcp://0.0.0.0:1234", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:1234", addr)
	assert.True(t, debug)

	addr, debug, err = parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:26658", addr)
	assert.False(t, debug)

	_, _, err = parseGetBlockArgs(nil)
	assert.True(t, errors.ErrInput.Is(err))

	path, height, err := parseGetBlockArgs([]string{"/tmp/blockstore.db", "-height", "7"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/blockstore.db", path)
	assert.Equal(t, int64(7), height)
}
