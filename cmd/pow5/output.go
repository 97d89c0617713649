package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type hashResult struct {
	Hash string `json:"hash"`
}

type headerResult struct {
	Variant string `json:"variant"`
	Header  string `json:"header"`
}

type nonceResult struct {
	Nonce uint32 `json:"nonce"`
	Hash  string `json:"hash"`
}

type evaluationSummary struct {
	Evaluated uint64  `json:"evaluated"`
	Seconds   float64 `json:"seconds"`
	HashRate  float64 `json:"hashRate"`
}

// printer writes command results either as plain text lines or as one JSON object per line
type printer struct {
	out     io.Writer
	useJSON bool
}

func (p *printer) print(result interface{}, plain string) error {
	if !p.useJSON {
		_, err := fmt.Fprintln(p.out, plain)
		return errors.WithStack(err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "error encoding the result as JSON")
	}
	_, err = fmt.Fprintln(p.out, string(encoded))
	return errors.WithStack(err)
}
