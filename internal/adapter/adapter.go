package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// MakeClientTLSConfig returns a [*tls.Config] for talking to the remote API.
//
// All args are filepaths. ca alone trusts a private CA, cert and key
// together add a client certificate for mutual TLS.
func MakeClientTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "adapter.MakeClientTLSConfig"

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if ca != "" {
		caCert, err := os.ReadFile(ca)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: failed to read CA certificate file: %w", op, err,
			)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("%s: %s", op, "failed to parse CA certificate")
		}
		cfg.RootCAs = caCertPool
	}

	if (cert == "") != (key == "") {
		return nil, fmt.Errorf(
			"%s: %w", op, errors.New("cert and key must be set together"),
		)
	}

	if cert != "" {
		clientCert, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cfg.Certificates = []tls.Certificate{clientCert}
	}

	return cfg, nil
}
