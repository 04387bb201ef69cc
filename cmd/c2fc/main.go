package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/litentry/akropolis-polkadot/internal/c2fc"
	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
	"github.com/litentry/akropolis-polkadot/internal/store"
	"github.com/litentry/akropolis-polkadot/pkg/db"
	"github.com/litentry/akropolis-polkadot/pkg/db/pebble"
	"github.com/litentry/akropolis-polkadot/pkg/log"
)

// Config is read from the environment, prefixed C2FC
// (e.g. C2FC_LOG_LEVEL=debug C2FC_DATA_DIR=/var/lib/c2fc).
type Config struct {
	LogLevel  string `split_words:"true" default:"info"`
	LogFormat string `split_words:"true" default:"console"`
	DataDir   string `split_words:"true"`
	Seed      string `default:"c2fc/dev"`
	Ticks     uint64 `default:"30"`
}

// main runs a scripted session against a fresh or restored core: three dev
// accounts trade a slot, attach a commitment and run it for Ticks ticks,
// journaling every event and snapshotting the final state. It doubles as a
// smoke test of the persistence path until a real block driver lands.
func main() {
	var cfg Config
	if err := envconfig.Process("c2fc", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "read config: %v\n", err)
		os.Exit(1)
	}

	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse log level: %v\n", err)
		os.Exit(1)
	}
	logType := log.ConsoleLogger
	if cfg.LogFormat == "json" {
		logType = log.JSONLogger
	}
	log.Init(log.Options{LogLevel: level, Type: logType})

	if err := run(cfg); err != nil {
		log.Root.Fatal().Err(err).Msg("daemon failed")
	}
}

func run(cfg Config) error {
	kv, err := openStore(cfg.DataDir)
	if err != nil {
		return err
	}
	defer kv.Close() //nolint:errcheck

	journal, err := store.NewJournal(kv)
	if err != nil {
		return err
	}
	state := store.NewState(kv)

	bank := ledger.NewInMemory()
	alice := accountFromName("alice")
	bob := accountFromName("bob")
	carol := accountFromName("carol")
	for _, who := range []ledger.AccountID{alice, bob, carol} {
		if err := bank.Credit(who, 1_000_000); err != nil {
			return fmt.Errorf("fund dev account: %w", err)
		}
	}

	core, startTick, err := openCore(state, journal, bank, cfg.Seed)
	if err != nil {
		return err
	}
	log.Root.Info().
		Uint64("tick", uint64(startTick)).
		Uint64("slots", core.SlotCount()).
		Uint64("journal_events", journal.Len()).
		Msg("core ready")

	slotID, err := core.CreateSlot(alice)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	commitmentID, err := core.CreateCommitment(bob, 1_000, 10)
	if err != nil {
		return fmt.Errorf("create commitment: %w", err)
	}
	if err := core.Stake(bob, commitmentID, 5_000); err != nil {
		return fmt.Errorf("stake: %w", err)
	}
	if err := core.Attach(alice, commitmentID, slotID, startTick); err != nil {
		return fmt.Errorf("attach: %w", err)
	}

	end := startTick + chaintime.Tick(cfg.Ticks)
	for now := startTick + 1; now <= end; now++ {
		// Pay on time for the first period only, then let the scanner
		// report the misses.
		if now.Since(startTick) < 10 {
			if err := core.Fill(bob, slotID, 100); err != nil {
				return fmt.Errorf("fill at tick %d: %w", now, err)
			}
		}
		core.OnTick(now)
	}

	if err := state.PutSnapshot(end, core.Snapshot()); err != nil {
		return err
	}
	log.Root.Info().
		Uint64("tick", uint64(end)).
		Uint64("journal_events", journal.Len()).
		Msg("session complete, state snapshotted")
	return nil
}

func openStore(dataDir string) (db.KVStore, error) {
	if dataDir == "" {
		log.Root.Warn().Msg("no data dir configured, state will not survive restarts")
		return pebble.NewKVStore()
	}
	return pebble.NewPersistentKVStore(dataDir)
}

// openCore restores the core from the latest snapshot, or starts a fresh one
// when the store holds none.
func openCore(state *store.State, journal *store.Journal, bank *ledger.InMemory, seed string) (*c2fc.Core, chaintime.Tick, error) {
	tick, snap, err := state.LatestSnapshot()
	switch {
	case err == nil:
		core, err := c2fc.Restore(bank, journal, snap)
		if err != nil {
			return nil, 0, fmt.Errorf("restore core: %w", err)
		}
		return core, tick, nil
	case errors.Is(err, store.ErrSnapshotNotFound):
		return c2fc.New(bank, journal, crypto.HashData([]byte(seed))), 0, nil
	default:
		return nil, 0, err
	}
}

func accountFromName(name string) ledger.AccountID {
	return ledger.AccountID(crypto.HashData([]byte(name)))
}
