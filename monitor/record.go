// Copyright (c) sy-cmd
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sy-cmd/vault-pki-toolkit/pkg/errors"
)

var (
	// ErrMalformed indicates a structurally invalid certificate artifact.
	ErrMalformed = errors.New("malformed certificate artifact")

	// ErrUnreadable indicates a certificate artifact that could not be retrieved.
	ErrUnreadable = errors.New("unreadable certificate artifact")
)

// Parse failure kinds, reported per artifact without aborting a scan.
const (
	KindMalformed  = "malformed"
	KindUnreadable = "unreadable"
)

var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}

// Record is the parsed identity of one certificate artifact. Records are
// created fresh on every scan and never mutated; the file on disk is the
// source of truth.
type Record struct {
	Path         string    `json:"path"`
	CommonName   string    `json:"common_name"`
	SerialNumber string    `json:"serial_number"`
	Issuer       string    `json:"issuer"`
	NotBefore    time.Time `json:"not_before"`
	NotAfter     time.Time `json:"not_after"`
	KeyBits      int       `json:"key_bits"`
	Fingerprint  string    `json:"fingerprint"`
}

// ID returns the stable identifier used by the API: the hex digest part of
// the fingerprint.
func (r Record) ID() string {
	if i := strings.IndexByte(r.Fingerprint, ':'); i >= 0 {
		return r.Fingerprint[i+1:]
	}
	return r.Fingerprint
}

// DaysRemaining returns whole days until expiry, truncated toward negative
// infinity: a certificate one second past expiry reports -1, not 0.
func (r Record) DaysRemaining(now time.Time) int {
	return DaysRemaining(r.NotAfter, now)
}

// ParseFailure records one artifact that could not be turned into a Record.
type ParseFailure struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// ParseRecord parses a PEM-encoded X.509 certificate into a Record. It has
// no side effects beyond reading the given bytes.
func ParseRecord(path string, data []byte) (Record, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return Record{}, errors.Wrap(ErrMalformed, errors.New("no CERTIFICATE PEM block"))
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return Record{}, errors.Wrap(ErrMalformed, err)
	}

	if !cert.NotBefore.Before(cert.NotAfter) {
		return Record{}, errors.Wrap(ErrMalformed, errors.New("validity window is empty"))
	}

	sum := sha256.Sum256(cert.Raw)

	return Record{
		Path:         path,
		CommonName:   firstCommonName(cert.Subject),
		SerialNumber: formatSerial(cert.SerialNumber.Bytes()),
		Issuer:       cert.Issuer.CommonName,
		NotBefore:    cert.NotBefore.UTC(),
		NotAfter:     cert.NotAfter.UTC(),
		KeyBits:      keyBits(cert),
		Fingerprint:  "sha256:" + hex.EncodeToString(sum[:]),
	}, nil
}

// ReadRecord reads and parses the artifact at path. Retrieval failures map
// to ErrUnreadable, parse failures to ErrMalformed.
func ReadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, errors.Wrap(ErrUnreadable, err)
	}

	return ParseRecord(path, data)
}

// firstCommonName returns the first CN attribute of the subject, matching
// conventional X.509 subject parsing. The stdlib Name.CommonName keeps the
// last occurrence, so walk the raw attribute list instead.
func firstCommonName(subject pkix.Name) string {
	for _, atv := range subject.Names {
		if atv.Type.Equal(oidCommonName) {
			if cn, ok := atv.Value.(string); ok {
				return cn
			}
		}
	}
	return subject.CommonName
}

func keyBits(cert *x509.Certificate) int {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return pub.N.BitLen()
	case *ecdsa.PublicKey:
		return pub.Curve.Params().BitSize
	case ed25519.PublicKey:
		return len(pub) * 8
	default:
		return 0
	}
}

// formatSerial renders a serial number as colon-separated hex pairs, the
// format the issuing backend uses for lookups and revocation.
func formatSerial(b []byte) string {
	if len(b) == 0 {
		return "00"
	}
	parts := make([]string, len(b))
	for i, octet := range b {
		parts[i] = fmt.Sprintf("%02x", octet)
	}
	return strings.Join(parts, ":")
}
