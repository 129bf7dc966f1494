// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btsuite/btsledger/address"
	"github.com/btsuite/btsledger/chainstate"
	"github.com/btsuite/btsledger/internal/zero"
	"github.com/btsuite/btsledger/scanner"
	"github.com/btsuite/btsledger/titan"
	"github.com/btsuite/btsledger/withdraw"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"
)

// command is a titanctl subcommand.
type command struct {
	name  string
	short string
	long  string

	// opts receives the command's options and arguments.
	opts interface{}

	// run executes the command, writing its result to w.
	run func(ctx context.Context, cfg *config, w io.Writer) error
}

type genKeyOpts struct {
	Seed    string `long:"seed" description:"Hex encoded BIP0032 seed (default: a new random seed)"`
	Account uint32 `long:"account" description:"Account the keys are derived under"`
	Count   uint32 `short:"n" long:"count" default:"1" description:"Number of keys to derive"`
}

type encryptOpts struct {
	To       string `long:"to" required:"true" description:"Receiver public key, hex"`
	From     string `long:"from" description:"Sender private key, hex (default: prompt without echo)"`
	Message  string `short:"m" long:"message" description:"Memo message, at most 20 bytes"`
	Amount   int64  `long:"amount" description:"Amount of the output"`
	AssetID  uint32 `long:"asset" description:"Asset id of the output"`
	Delegate int32  `long:"delegate" description:"Delegate id the output votes for"`
}

type decryptOpts struct {
	Keys    []string `short:"k" long:"key" required:"true" description:"Receiver private key, hex; may be repeated"`
	Workers int      `long:"workers" description:"Number of outputs tested at once (default: one per CPU)"`
}

type validateNameOpts struct {
	Data string `long:"data" description:"JSON data to register with the name"`

	Args struct {
		Name string `positional-arg-name:"name" required:"true"`
	} `positional-args:"yes"`
}

type newIDOpts struct {
	Args struct {
		Kind string `positional-arg-name:"asset|name|proposal" required:"true"`
	} `positional-args:"yes"`
}

type delegatesOpts struct {
	Set   string `long:"set" description:"Comma separated delegate ids to store as the active list"`
	Check *int32 `long:"check" description:"Report whether a delegate id is active"`
}

type feesOpts struct{}

var (
	genKey       genKeyOpts
	encrypt      encryptOpts
	decrypt      decryptOpts
	validateName validateNameOpts
	newID        newIDOpts
	delegates    delegatesOpts
	fees         feesOpts
)

// commands lists every titanctl subcommand.
var commands = []*command{{
	name:  "genkey",
	short: "Derive receiver keys",
	long: "Derive receiver keys from a seed along m/account'/i and " +
		"print them with their public keys and addresses.",
	opts: &genKey,
	run:  runGenKey,
}, {
	name:  "encrypt",
	short: "Build a stealth output",
	long: "Build a balance record paying to the receiver's public key " +
		"with an encrypted memo, and print it as JSON.",
	opts: &encrypt,
	run:  runEncrypt,
}, {
	name:  "decrypt",
	short: "Scan balance records for stealth payments",
	long: "Read a JSON array of balance records (or a single record) " +
		"from standard input and print those opened by the given keys.",
	opts: &decrypt,
	run:  runDecrypt,
}, {
	name:  "validatename",
	short: "Check a name and its data",
	long:  "Check a name against the registration rules and its data as JSON.",
	opts:  &validateName,
	run:   runValidateName,
}, {
	name:  "newid",
	short: "Allocate an identifier",
	long:  "Allocate and persist the next asset, name or proposal id.",
	opts:  &newID,
	run:   runNewID,
}, {
	name:  "delegates",
	short: "Show or set the active delegates",
	long:  "Show, replace or query the cached active delegate list.",
	opts:  &delegates,
	run:   runDelegates,
}, {
	name:  "fees",
	short: "Show registration fees",
	long:  "Show the delegate and asset registration fees at --feerate.",
	opts:  &fees,
	run:   runFees,
}}

// addCommands registers every command with parser and returns them keyed by
// their parser command.
func addCommands(parser *flags.Parser) (map[*flags.Command]*command, error) {
	cmds := make(map[*flags.Command]*command, len(commands))
	for _, c := range commands {
		pc, err := parser.AddCommand(c.name, c.short, c.long, c.opts)
		if err != nil {
			return nil, err
		}
		cmds[pc] = c
	}
	return cmds, nil
}

// parsePrivKey parses a hex encoded 32 byte secp256k1 private key.
func parsePrivKey(s string) (*btcec.PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("private key is %d bytes, want %d",
			len(b), btcec.PrivKeyBytesLen)
	}

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(b)
	if overflow || scalar.IsZero() {
		return nil, errors.New("private key out of range")
	}

	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv, nil
}

// promptPrivKey reads a hex encoded private key from the terminal without
// echoing it.
func promptPrivKey(prompt string) (*btcec.PrivateKey, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	defer zero.Bytes(b)

	return parsePrivKey(string(bytes.TrimSpace(b)))
}

// keyJSON describes a derived receiver key.
type keyJSON struct {
	Index      uint32            `json:"index"`
	PrivateKey string            `json:"private_key"`
	PublicKey  address.PublicKey `json:"public_key"`
	Address    address.Address   `json:"address"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runGenKey(_ context.Context, cfg *config, w io.Writer) error {
	var (
		seed []byte
		err  error
	)
	if genKey.Seed != "" {
		seed, err = hex.DecodeString(genKey.Seed)
	} else {
		seed, err = hdkeychain.GenerateSeed(hdkeychain.RecommendedSeedLen)
		if err == nil {
			fmt.Fprintf(w, "seed: %x\n", seed)
		}
	}
	if err != nil {
		return err
	}

	out, err := keysFromSeed(seed, cfg.params, genKey.Account,
		genKey.Count)
	if err != nil {
		return err
	}
	return writeJSON(w, out)
}

// keysFromSeed derives count stealth receive keys from seed.  The seed and
// the derived private keys are zeroed before it returns.
func keysFromSeed(seed []byte, params *chaincfg.Params, account,
	count uint32) ([]keyJSON, error) {

	defer zero.Bytes(seed)

	keys, err := scanner.DeriveKeys(seed, params, account, count)
	if err != nil {
		return nil, err
	}

	out := make([]keyJSON, len(keys))
	for i, key := range keys {
		out[i] = keyJSON{
			Index:      uint32(i),
			PrivateKey: hex.EncodeToString(key.Serialize()),
			PublicKey:  address.NewPublicKey(key.PubKey()),
			Address:    address.FromPubKey(key.PubKey()),
		}
		key.Zero()
	}
	return out, nil
}

func runEncrypt(_ context.Context, _ *config, w io.Writer) error {
	var toKey address.PublicKey
	if err := toKey.UnmarshalText([]byte(encrypt.To)); err != nil {
		return fmt.Errorf("invalid --to key: %w", err)
	}
	to, err := toKey.Key()
	if err != nil {
		return fmt.Errorf("invalid --to key: %w", err)
	}

	var from *btcec.PrivateKey
	if encrypt.From != "" {
		from, err = parsePrivKey(encrypt.From)
	} else {
		from, err = promptPrivKey("Sender private key: ")
	}
	if err != nil {
		return fmt.Errorf("invalid --from key: %w", err)
	}
	defer from.Zero()

	amount := withdraw.Asset{
		Amount:  withdraw.ShareType(encrypt.Amount),
		AssetID: withdraw.AssetID(encrypt.AssetID),
	}
	rec, err := titan.NewStealthBalance(
		amount, withdraw.NameID(encrypt.Delegate), to, from,
		encrypt.Message,
	)
	if err != nil {
		return err
	}

	log.Debugf("Built stealth output owned by %v", rec.Owner())
	return writeJSON(w, rec)
}

// matchJSON describes an opened stealth output.
type matchJSON struct {
	Index             int               `json:"index"`
	Owner             address.Address   `json:"owner"`
	Balance           withdraw.Asset    `json:"balance"`
	Message           string            `json:"message"`
	From              address.PublicKey `json:"from"`
	HasValidSignature bool              `json:"has_valid_signature"`
	OwnerPrivateKey   string            `json:"owner_private_key"`
}

// readRecords decodes either a JSON array of balance records or a single
// record.
func readRecords(r io.Reader) ([]withdraw.BalanceRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Input opening with a bracket is a list and its errors are final.
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 &&
		trimmed[0] == '[' {

		var recs []withdraw.BalanceRecord
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	}

	var rec withdraw.BalanceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return []withdraw.BalanceRecord{rec}, nil
}

func runDecrypt(ctx context.Context, _ *config, w io.Writer) error {
	return decryptRecords(ctx, os.Stdin, w)
}

func decryptRecords(ctx context.Context, r io.Reader, w io.Writer) error {
	keys := make([]*btcec.PrivateKey, 0, len(decrypt.Keys))
	defer func() {
		for _, key := range keys {
			key.Zero()
		}
	}()
	for _, s := range decrypt.Keys {
		key, err := parsePrivKey(s)
		if err != nil {
			return fmt.Errorf("invalid --key: %w", err)
		}
		keys = append(keys, key)
	}

	recs, err := readRecords(r)
	if err != nil {
		return err
	}

	outputs := make([]scanner.Output, len(recs))
	for i := range recs {
		outputs[i] = scanner.Output{
			Index:     i,
			Condition: recs[i].Condition,
		}
	}

	s := scanner.Scanner{Workers: decrypt.Workers}
	matches, err := s.Scan(ctx, outputs, keys)
	if err != nil {
		return err
	}

	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		rec := recs[m.Index]
		out = append(out, matchJSON{
			Index:   m.Index,
			Owner:   rec.Owner(),
			Balance: rec.GetBalance(),
			Message: strings.TrimRight(
				m.Status.Memo.GetMessage(), "\x00",
			),
			From:              m.Status.Memo.From,
			HasValidSignature: m.Status.HasValidSignature,
			OwnerPrivateKey: hex.EncodeToString(
				m.Status.OwnerPrivateKey.Serialize(),
			),
		})
		m.Status.Zero()
	}
	return writeJSON(w, out)
}

func runValidateName(_ context.Context, _ *config, w io.Writer) error {
	if err := chainstate.ValidateName(validateName.Args.Name); err != nil {
		return err
	}
	if validateName.Data != "" {
		if err := chainstate.ValidateJSON(validateName.Data); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s: valid\n", validateName.Args.Name)
	return err
}

func runNewID(ctx context.Context, cfg *config, w io.Writer) error {
	chain, closeStore, err := newChain(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return allocateID(chain, newID.Args.Kind, w)
}

func allocateID(chain *chainstate.Chain, kind string, w io.Writer) error {
	var (
		id  int64
		err error
	)
	switch kind {
	case "asset":
		var v withdraw.AssetID
		v, err = chain.NewAssetID()
		id = int64(v)

	case "name":
		var v withdraw.NameID
		v, err = chain.NewNameID()
		id = int64(v)

	case "proposal":
		var v chainstate.ProposalID
		v, err = chain.NewProposalID()
		id = int64(v)

	default:
		return fmt.Errorf("unknown id kind %q -- want asset, name or "+
			"proposal", kind)
	}
	if err != nil {
		return err
	}

	log.Infof("Allocated %s id %d", kind, id)
	_, err = fmt.Fprintln(w, id)
	return err
}

func runDelegates(ctx context.Context, cfg *config, w io.Writer) error {
	chain, closeStore, err := newChain(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return manageDelegates(chain, &delegates, w)
}

func manageDelegates(chain *chainstate.Chain, opts *delegatesOpts,
	w io.Writer) error {

	if opts.Set != "" {
		ids, err := parseDelegateList(opts.Set)
		if err != nil {
			return err
		}
		if err := chain.SetActiveDelegates(ids); err != nil {
			return err
		}
	}

	if opts.Check != nil {
		ok, err := chain.IsActiveDelegate(withdraw.NameID(*opts.Check))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%d active: %v\n", *opts.Check, ok)
		return err
	}

	ids, err := chain.ActiveDelegates()
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []withdraw.NameID{}
	}
	return writeJSON(w, ids)
}

func parseDelegateList(s string) ([]withdraw.NameID, error) {
	fields := strings.Split(s, ",")
	ids := make([]withdraw.NameID, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid delegate id %q: %w", f,
				err)
		}
		ids = append(ids, withdraw.NameID(n))
	}
	return ids, nil
}

func runFees(_ context.Context, cfg *config, w io.Writer) error {
	rate := cfg.FeeRate.ShareType
	chain := chainstate.New(chainstate.Config{
		Store:   chainstate.NewMemStore(),
		FeeRate: func() withdraw.ShareType { return rate },
	})

	_, err := fmt.Fprintf(w, "delegate registration fee: %d\n"+
		"asset registration fee: %d\n", chain.DelegateRegistrationFee(),
		chain.AssetRegistrationFee())
	return err
}
