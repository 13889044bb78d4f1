package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/lockbox"
	lockboxd "github.com/iov-one/lockbox/cmd/lockboxd/app"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/timelock"
)

// keyFile is the format written by keygen.
type keyFile struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// keygenCmd writes a new private key to the given file, or to stdout.
func keygenCmd(args []string) error {
	priv := crypto.GenPrivKeyEd25519()
	raw, err := json.MarshalIndent(keyFile{Pubkey: priv.PublicKey(), Secret: priv}, "", "  ")
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(string(raw))
		return nil
	}
	if err := ioutil.WriteFile(args[0], raw, 0600); err != nil {
		return err
	}
	fmt.Println(priv.PublicKey().Address())
	return nil
}

func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read key file")
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if kf.Secret == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "secret key")
	}
	return kf.Secret, nil
}

type txArgs struct {
	keyPath string
	chainID string
	seq     int64
	id      string
	expires int64
	funds   string
	sender  string
	amount  uint64
	payload string
}

const txUsage = "usage: cmd tx <create|increase|release|receive> -key <key file> -chain <chain id> [-seq N] [flags]"

func parseTxArgs(args []string) (string, txArgs, error) {
	if len(args) == 0 {
		return "", txArgs{}, errors.Wrap(errors.ErrInput, txUsage)
	}
	var a txArgs
	fs := flag.NewFlagSet("tx", flag.ContinueOnError)
	fs.StringVar(&a.keyPath, "key", "", "key file written by keygen")
	fs.StringVar(&a.chainID, "chain", "", "chain id the transaction is valid for")
	fs.Int64Var(&a.seq, "seq", 0, "sequence of the signer")
	fs.StringVar(&a.id, "id", "", "lock id, generated for create when empty")
	fs.Int64Var(&a.expires, "expires", 0, "expiry time of a new lock, unix seconds")
	fs.StringVar(&a.funds, "funds", "", "comma separated coins, for example \"10 ETH,2.5 BTC\"")
	fs.StringVar(&a.sender, "sender", "", "depositor of received tokens")
	fs.Uint64Var(&a.amount, "amount", 0, "amount of received tokens")
	fs.StringVar(&a.payload, "payload", "", "JSON instruction of received tokens")
	err := fs.Parse(args[1:])
	return args[0], a, err
}

func parseFunds(s string) ([]*coin.Coin, error) {
	var coins []*coin.Coin
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := coin.ParseHumanFormat(part)
		if err != nil {
			return nil, err
		}
		coins = append(coins, &c)
	}
	return coins, nil
}

func buildMsg(kind string, a txArgs) (lockbox.Msg, error) {
	switch kind {
	case "create":
		funds, err := parseFunds(a.funds)
		if err != nil {
			return nil, err
		}
		id := a.id
		if id == "" {
			id = lockboxd.NewLockID()
		}
		return &timelock.CreateLockMsg{ID: id, ExpiresAt: lockbox.UnixTime(a.expires), Funds: funds}, nil
	case "increase":
		funds, err := parseFunds(a.funds)
		if err != nil {
			return nil, err
		}
		return &timelock.IncreaseLockMsg{ID: a.id, Funds: funds}, nil
	case "release":
		return &timelock.ReleaseLockMsg{ID: a.id}, nil
	case "receive":
		return &timelock.ReceiveTokenMsg{Sender: a.sender, Amount: a.amount, Msg: []byte(a.payload)}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown transaction %q", kind)
	}
}

// txCmd prints the hex encoded signed transaction, ready to be broadcast
// through the tendermint RPC.
func txCmd(args []string) error {
	return writeTx(os.Stdout, args)
}

func writeTx(w io.Writer, args []string) error {
	kind, a, err := parseTxArgs(args)
	if err != nil {
		return err
	}
	if a.chainID == "" {
		return errors.Wrap(errors.ErrEmpty, "chain id")
	}
	key, err := loadKey(a.keyPath)
	if err != nil {
		return err
	}
	msg, err := buildMsg(kind, a)
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	tx, err := lockboxd.SignedTx(msg, a.chainID, []crypto.Signer{key}, []int64{a.seq})
	if err != nil {
		return err
	}
	raw, err := lockboxd.MarshalTx(tx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(raw))
	return err
}
