package brokerage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// The account interchange format is JSONL, one JSON object per line: a
// header carrying the owner and currency, then the transactions in log
// order. Keys keep a fixed order and decimal fields keep their canonical
// digits, so the stream is stable under re-encoding and diff-friendly.
//
// The core account stays storage-free; the CLI round-trips its state
// through this codec.

// accountHeader is the first line of an encoded account stream.
type accountHeader struct {
	Owner    string `json:"owner"`
	Currency string `json:"currency"`
}

func (h accountHeader) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("owner", h.Owner)
	w.Append("currency", h.Currency)
	return w.MarshalJSON()
}

// EncodeAccount writes the whole account to w as a JSONL stream.
func EncodeAccount(w io.Writer, a *Account) error {
	hdr, err := json.Marshal(accountHeader{Owner: a.Owner(), Currency: a.Currency()})
	if err != nil {
		return fmt.Errorf("failed to marshal account header: %w", err)
	}
	if _, err := w.Write(append(hdr, '\n')); err != nil {
		return fmt.Errorf("failed to write account header: %w", err)
	}
	for tx := range a.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction marshals a single record and writes it to w followed
// by a newline, in JSONL format. The CLI uses it to append to an account
// file without rewriting the whole stream.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// DecodeAccount reads a JSONL stream produced by EncodeAccount and
// rebuilds the account, replaying every record through the same
// invariant checks a live mutation passes. A stream that breaks
// chronology, overdraws cash, or oversells a position is rejected with
// the matching sentinel error.
func DecodeAccount(r io.Reader) (*Account, error) {
	scanner := bufio.NewScanner(r)

	var account *Account
	line := 0
	for scanner.Scan() {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		line++

		if account == nil {
			var hdr accountHeader
			if err := json.Unmarshal(raw, &hdr); err != nil {
				return nil, fmt.Errorf("invalid account header %q: %w", string(raw), err)
			}
			var err error
			if account, err = NewAccount(hdr.Owner, hdr.Currency); err != nil {
				return nil, err
			}
			continue
		}

		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("invalid transaction on line %d: %w", line, err)
		}
		if err := account.replay(tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading account stream: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("account stream is empty")
	}
	return account, nil
}
