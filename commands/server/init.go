package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/lockbox/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the genesis file in the home
// directory, the same one tendermint uses.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func parseInitFlags(args []string) (bool, []string, error) {
	var force bool
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.BoolVar(&force, flagForce, false, "overwrite an existing app_state")
	err := initFlags.Parse(args)
	return force, initFlags.Args(), err
}

// InitCmd adds the app_state generated by gen to the genesis file in the
// home directory. The genesis file is usually created by running
// `tendermint init` with the same home directory first. If it does not
// exist, a minimal one with a random chain id is created.
//
// An existing app_state is only replaced when -f is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force, rest, err := parseInitFlags(args)
	if err != nil {
		return err
	}

	genFile := GenesisPath(home)
	doc, err := loadGenesis(genFile)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = newGenesisDoc()
		logger.Info("Generating genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrapf(errors.ErrState, "%s already contains %s, use -%s to overwrite", genFile, appStateKey, flagForce)
	}

	// Now, we want to add the custom app_state
	options, err := gen(rest)
	if err != nil {
		return err
	}
	doc[appStateKey] = options
	return writeGenesis(genFile, doc)
}

// newGenesisDoc returns the fields tendermint requires at a minimum.
func newGenesisDoc() GenesisDoc {
	chainID, _ := json.Marshal(fmt.Sprintf("test-chain-%v", cmn.RandStr(6)))
	genesisTime, _ := json.Marshal(time.Now().UTC())
	return GenesisDoc{
		"chain_id":     chainID,
		"genesis_time": genesisTime,
	}
}

// loadGenesis returns nil if the file does not exist.
func loadGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot read genesis file")
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return doc, nil
}

func writeGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
