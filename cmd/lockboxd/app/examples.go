package lockboxd

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/commands"
	"github.com/iov-one/lockbox/crypto"
	"github.com/iov-one/lockbox/x/sigs"
	"github.com/iov-one/lockbox/x/timelock"
)

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproduceable.
var (
	source = makePrivKey("1234567890")
	issuer = makePrivKey("F00BA411")
)

// makePrivKey repeats the string as long as needed to get 64 digits, then
// parses it as hex. It uses this repeated string as a "random" seed
// for the private key.
func makePrivKey(seed string) *crypto.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return crypto.PrivKeyEd25519FromSeed(bin)
}

// exampleID derives a stable lock ID from the name.
func exampleID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	const chainID = "test-123"
	owner := source.PublicKey().Address()

	funds := []*coin.Coin{
		coin.NewCoinp(50000, 0, "ETH"),
		coin.NewCoinp(150, 567000, "BTC"),
	}

	lock := &timelock.Lock{
		Owner:     owner,
		ID:        exampleID("lock"),
		CreatedAt: 1500000000,
		ExpiresAt: 1600000000,
		Funds: &timelock.Balance{
			Native: funds,
			Tokens: []*timelock.TokenAmount{
				{Token: issuer.PublicKey().Address(), Amount: 1000},
			},
		},
	}

	user := &sigs.UserData{
		Pubkey:   source.PublicKey(),
		Sequence: 17,
	}

	create := &timelock.CreateLockMsg{
		ID:        exampleID("lock"),
		ExpiresAt: 1600000000,
		Funds:     funds,
	}
	release := &timelock.ReleaseLockMsg{ID: exampleID("lock")}

	payload, err := json.Marshal(timelock.ReceivePayload{
		IncreaseLock: &timelock.IncreaseLockPayload{ID: exampleID("lock")},
	})
	if err != nil {
		panic(err)
	}
	receive := &timelock.ReceiveTokenMsg{
		Sender: owner.String(),
		Amount: 1000,
		Msg:    payload,
	}

	createTx, err := SignedTx(create, chainID, []crypto.Signer{source}, []int64{17})
	if err != nil {
		panic(err)
	}
	releaseTx, err := SignedTx(release, chainID, []crypto.Signer{source}, []int64{18})
	if err != nil {
		panic(err)
	}
	receiveTx, err := SignedTx(receive, chainID, []crypto.Signer{issuer}, []int64{0})
	if err != nil {
		panic(err)
	}

	return []commands.Example{
		{Filename: "pubkey", Obj: source.PublicKey()},
		{Filename: "privkey", Obj: source},
		{Filename: "lock", Obj: lock},
		{Filename: "user", Obj: user},
		{Filename: "create_lock_msg", Obj: create},
		{Filename: "release_lock_msg", Obj: release},
		{Filename: "receive_token_msg", Obj: receive},
		{Filename: "create_lock_tx", Obj: createTx},
		{Filename: "release_lock_tx", Obj: releaseTx},
		{Filename: "receive_token_tx", Obj: receiveTx},
	}
}
