package c2fc

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
	"github.com/litentry/akropolis-polkadot/pkg/log"
)

func TestMain(m *testing.M) {
	log.Init(log.Options{LogLevel: zerolog.ErrorLevel, Type: log.JSONLogger})
	os.Exit(m.Run())
}

var (
	alice = account(1)
	bob   = account(2)
	carol = account(3)
)

func account(b byte) ledger.AccountID {
	var id ledger.AccountID
	id[0] = b
	return id
}

// newTestCore builds a core over an in-memory ledger with every test
// account funded, recording all events.
func newTestCore(t *testing.T) (*Core, *ledger.InMemory, *Recorder) {
	t.Helper()
	bank := ledger.NewInMemory()
	for _, who := range []ledger.AccountID{alice, bob, carol} {
		require.NoError(t, bank.Credit(who, 10_000))
	}
	rec := &Recorder{}
	return New(bank, rec, crypto.HashData([]byte("test seed"))), bank, rec
}
