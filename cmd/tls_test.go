package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pitchboard/pkg/config"
)

func TestBuildTLSConfig_SelfSignedOutsideProduction(t *testing.T) {
	t.Setenv("TLS_CERT", "")
	t.Setenv("TLS_KEY", "")

	tlsConfig, certFile, keyFile, err := buildTLSConfig(config.EnvDevelopment, config.TLSSettings{Enabled: true, AllowSelfSigned: true})
	require.NoError(t, err)
	require.Len(t, tlsConfig.Certificates, 1)
	require.Empty(t, certFile)
	require.Empty(t, keyFile)
}

func TestBuildTLSConfig_NoCertificatesInProduction(t *testing.T) {
	t.Setenv("TLS_CERT", "")
	t.Setenv("TLS_KEY", "")

	_, _, _, err := buildTLSConfig(config.EnvProduction, config.TLSSettings{Enabled: true, AllowSelfSigned: true})
	require.Error(t, err)
}

func TestBuildTLSConfig_MissingFiles(t *testing.T) {
	_, _, _, err := buildTLSConfig(config.EnvDevelopment, config.TLSSettings{
		Enabled:  true,
		CertPath: "/nonexistent/cert.pem",
		KeyPath:  "/nonexistent/key.pem",
	})
	require.Error(t, err)
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(config.CORSSettings{AllowedOrigins: []string{"https://a.example"}, AllowCredentials: true})
	require.Equal(t, []string{"https://a.example"}, cfg.AllowOrigins)
	require.True(t, cfg.AllowCredentials)
}
