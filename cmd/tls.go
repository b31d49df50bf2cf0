package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"pitchboard/pkg/config"
)

// listen serves plain HTTP or HTTPS depending on the TLS settings and blocks until the server stops.
func listen(srv *http.Server, env string, s config.TLSSettings) error {
	if !s.Enabled {
		return srv.ListenAndServe()
	}

	tlsConfig, certFile, keyFile, err := buildTLSConfig(env, s)
	if err != nil {
		return fmt.Errorf("TLS setup: %w", err)
	}
	srv.TLSConfig = tlsConfig

	if certFile != "" && keyFile != "" {
		return srv.ListenAndServeTLS(certFile, keyFile)
	}
	return srv.ListenAndServeTLS("", "")
}

// buildTLSConfig prefers certificate files, then inline PEM (TLS_CERT/TLS_KEY),
// then a self-signed certificate outside production.
func buildTLSConfig(env string, s config.TLSSettings) (*tls.Config, string, string, error) {
	if s.CertPath != "" && s.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(s.CertPath, s.KeyPath)
		if err != nil {
			return nil, "", "", err
		}
		return &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}, s.CertPath, s.KeyPath, nil
	}

	certPEM := os.Getenv("TLS_CERT")
	keyPEM := os.Getenv("TLS_KEY")
	if certPEM != "" && keyPEM != "" {
		cert, err := tls.X509KeyPair([]byte(certPEM), []byte(keyPEM))
		if err != nil {
			return nil, "", "", err
		}
		return &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}, "", "", nil
	}

	if env != config.EnvProduction && s.AllowSelfSigned {
		log.Warn().Msg("no TLS certificate configured; using a self-signed certificate for localhost")
		cert, err := generateSelfSignedCert()
		if err != nil {
			return nil, "", "", err
		}
		return &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}, "", "", nil
	}

	return nil, "", "", fmt.Errorf("no TLS certificates available")
}

func generateSelfSignedCert() (tls.Certificate, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return tls.Certificate{}, err
	}

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return tls.Certificate{}, err
	}

	tmpl := x509.Certificate{
		SerialNumber:          serialNumber,
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		return tls.Certificate{}, err
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})

	return tls.X509KeyPair(certPEM, keyPEM)
}
