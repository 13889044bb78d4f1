package lockboxd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/x/timelock"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultMaxLockDuration is used by GenInitOptions when no duration is
// given.
const DefaultMaxLockDuration = "8760h"

// GenInitOptions will produce the app_state for a new chain.
//
// The first argument is the maximum lock duration, either in seconds or
// as understood by time.ParseDuration. The second is the address of the
// owner. If no owner is given a key is generated and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	duration := DefaultMaxLockDuration
	if len(args) > 0 {
		duration = args[0]
	}
	// a plain number is a number of seconds
	raw := duration
	if _, err := strconv.ParseInt(duration, 10, 64); err != nil {
		raw = strconv.Quote(duration)
	}
	var maxDuration lockbox.UnixDuration
	if err := maxDuration.UnmarshalJSON([]byte(raw)); err != nil {
		return nil, err
	}

	var owner lockbox.Address
	if len(args) > 1 {
		addr, err := lockbox.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		owner = addr
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(keys)
	}

	conf := timelock.Configuration{
		Owner:           owner,
		MaxLockDuration: maxDuration,
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"timelock": conf,
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "lockbox.db")
	}

	application, err := Application("lockboxd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(lockbox.ChainInitializers(
		timelock.Initializer{},
	))

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// Initializer returns the genesis initializer of the node, used to
// validate genesis files.
func Initializer() lockbox.Initializer {
	return lockbox.ChainInitializers(timelock.Initializer{})
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (lockbox.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
