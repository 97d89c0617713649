package main

import (
	"encoding/base64"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/keypears/keypears/domain/pow"
	"github.com/pkg/errors"
	fasthex "github.com/tmthrgd/go-hex"
	"golang.org/x/term"
)

// maxInputSize is the maximum number of bytes accepted as decoded input
const maxInputSize = 10 * 1024

// maxEncodedInputSize bounds what's read from stdin: hex of maxInputSize bytes, an optional 0x prefix,
// and room for surrounding whitespace. decode enforces maxInputSize itself.
const maxEncodedInputSize = 2*maxInputSize + 2 + 64

const (
	encodingHex    = "hex"
	encodingBase64 = "base64"
)

// inputSource provides the values of options that were omitted from the command line
type inputSource struct {
	reader     io.Reader
	isTerminal bool
}

func stdinSource() *inputSource {
	return &inputSource{
		reader:     os.Stdin,
		isTerminal: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// valueOrRead returns value if it's not empty, and otherwise reads the value from the input
// source. Reading from an interactive terminal is refused, since that would block waiting for input
// the user doesn't know is expected.
func (source *inputSource) valueOrRead(value string, optionName string) (string, error) {
	if value != "" {
		return value, nil
	}
	if source.isTerminal {
		return "", errors.Errorf("--%s is required when stdin is a terminal", optionName)
	}

	content, err := io.ReadAll(io.LimitReader(source.reader, maxEncodedInputSize+1))
	if err != nil {
		return "", errors.Wrapf(err, "error reading --%s from stdin", optionName)
	}
	if len(content) > maxEncodedInputSize {
		return "", errors.Errorf("input on stdin is larger than %d bytes", maxEncodedInputSize)
	}
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", errors.Errorf("--%s was omitted and stdin is empty", optionName)
	}
	return trimmed, nil
}

func decode(encoded string, encoding string) ([]byte, error) {
	var decoded []byte
	var err error
	switch encoding {
	case encodingHex:
		decoded, err = fasthex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	case encodingBase64:
		decoded, err = base64.StdEncoding.DecodeString(encoded)
	default:
		return nil, errors.Errorf("unknown encoding '%s'. Supported encodings: %s, %s",
			encoding, encodingHex, encodingBase64)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding %s input", encoding)
	}
	if len(decoded) > maxInputSize {
		return nil, errors.Errorf("decoded input is %d bytes, which is more than the maximum of %d bytes",
			len(decoded), maxInputSize)
	}
	return decoded, nil
}

func encode(decoded []byte, encoding string) (string, error) {
	switch encoding {
	case encodingHex:
		return fasthex.EncodeToString(decoded), nil
	case encodingBase64:
		return base64.StdEncoding.EncodeToString(decoded), nil
	}
	return "", errors.Errorf("unknown encoding '%s'. Supported encodings: %s, %s",
		encoding, encodingHex, encodingBase64)
}

// readHeader resolves the variant and the decoded header selected by headerFlags
func readHeader(headerFlags *HeaderFlags, source *inputSource) (pow.Variant, []byte, error) {
	variant, err := pow.ParseVariant(headerFlags.Variant)
	if err != nil {
		return 0, nil, err
	}
	encoded, err := source.valueOrRead(headerFlags.Header, "header")
	if err != nil {
		return 0, nil, err
	}
	header, err := decode(encoded, headerFlags.Encoding)
	if err != nil {
		return 0, nil, err
	}
	err = variant.ValidateHeader(header)
	if err != nil {
		return 0, nil, err
	}
	return variant, header, nil
}

// parseNonce parses a 32 bit nonce given in decimal, or in hex with a 0x prefix
func parseNonce(nonceString string) (uint32, error) {
	nonce, err := strconv.ParseUint(nonceString, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid nonce '%s'", nonceString)
	}
	return uint32(nonce), nil
}

// applyNonce inserts the nonce selected by nonceString or wideNonceString into header.
// header is returned as-is when neither is set.
func applyNonce(variant pow.Variant, header []byte, nonceString, wideNonceString string) ([]byte, error) {
	if nonceString != "" && wideNonceString != "" {
		return nil, errors.New("--nonce and --wide-nonce can't be used together")
	}

	if wideNonceString != "" {
		if variant != pow.Variant64b {
			return nil, errors.Errorf("--wide-nonce is only supported for %s headers", pow.Variant64b)
		}
		wideNonce, err := decode(wideNonceString, encodingHex)
		if err != nil {
			return nil, err
		}
		return pow.SetNonce64b(header, wideNonce)
	}

	if nonceString != "" {
		nonce, err := parseNonce(nonceString)
		if err != nil {
			return nil, err
		}
		return variant.InsertNonce(header, nonce)
	}

	return header, nil
}
