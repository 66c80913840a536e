// Package twofa answers whether a site supports two-factor authentication,
// using a static directory in the 2fa.directory v3 format.
package twofa

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed directory.json
var embedded []byte

// Entry describes one site.
type Entry struct {
	Name              string   `json:"-"`
	Domain            string   `json:"domain"`
	AdditionalDomains []string `json:"additional-domains"`
	TFA               []string `json:"tfa"`
}

// Supported reports whether the site offers any 2FA method.
func (e Entry) Supported() bool {
	return len(e.TFA) > 0
}

// Directory is an immutable list of entries, safe for concurrent use.
type Directory struct {
	entries []Entry
}

// Fetcher loads a raw directory document by key (e.g. an R2 bucket).
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Parse decodes a directory document: an array of [name, entry] pairs.
func Parse(data []byte) (*Directory, error) {
	var raw [][]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}

	d := &Directory{entries: make([]Entry, 0, len(raw))}
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("parse directory: entry %d has %d elements", i, len(pair))
		}
		var e Entry
		if err := json.Unmarshal(pair[0], &e.Name); err != nil {
			return nil, fmt.Errorf("parse directory: entry %d name: %w", i, err)
		}
		if err := json.Unmarshal(pair[1], &e); err != nil {
			return nil, fmt.Errorf("parse directory: entry %d: %w", i, err)
		}
		if e.Domain == "" {
			continue
		}
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// Default returns the directory compiled into the binary.
func Default() *Directory {
	d, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return d
}

// LoadFile parses a directory from disk.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadRemote parses a directory fetched from f.
func LoadRemote(ctx context.Context, f Fetcher, key string) (*Directory, error) {
	data, err := f.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch directory: %w", err)
	}
	return Parse(data)
}

func (d *Directory) Len() int { return len(d.entries) }

// Lookup finds the entry whose domain, or failing that one of whose
// additional domains, is a substring of host. The primary-domain pass runs
// over every entry before aliases are considered.
func (d *Directory) Lookup(host string) (Entry, bool) {
	host = strings.ToLower(host)
	if host == "" {
		return Entry{}, false
	}

	for _, e := range d.entries {
		if strings.Contains(host, strings.ToLower(e.Domain)) {
			return e, true
		}
	}
	for _, e := range d.entries {
		for _, alias := range e.AdditionalDomains {
			if alias != "" && strings.Contains(host, strings.ToLower(alias)) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Supports returns the canonical domain for host when the matched site
// supports 2FA.
func (d *Directory) Supports(host string) (string, bool) {
	e, ok := d.Lookup(host)
	if !ok || !e.Supported() {
		return "", false
	}
	return e.Domain, true
}
