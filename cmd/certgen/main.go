// Command certgen writes a self-signed certificate for serving the darts API
// over TLS. Point [tls] in the server config at the files it writes.
package main

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

const keyBits = 4096

var ErrCertExists = errors.New("cert exists")

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var (
		ipFlag   string
		certFile string
		keyFile  string
	)
	flag.StringVar(&ipFlag, "ip", "", "ip the certificate is issued for, loopback by default")
	flag.StringVar(&certFile, "cert", "cert.pem", "certificate output")
	flag.StringVar(&keyFile, "key", "key.pem", "private key output")
	flag.Parse()

	if !isMissing(certFile) || !isMissing(keyFile) {
		return ErrCertExists
	}

	ips := []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
	if ipFlag != "" {
		ip := net.ParseIP(ipFlag)
		if ip == nil {
			return fmt.Errorf("bad ip %q", ipFlag)
		}
		ips = []net.IP{ip}
	}

	certPEM, keyPEM, err := generate(ips, keyBits, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(keyFile, keyPEM, 0o600)
}

func subject() pkix.Name {
	return pkix.Name{
		Organization: []string{"Darts scorekeeper"},
		CommonName:   "darts",
	}
}

// generate issues a server certificate for ips signed by a throwaway CA.
func generate(ips []net.IP, bits int, now time.Time) (certPEM, keyPEM []byte, err error) {
	caSerial, err := randomSerial()
	if err != nil {
		return nil, nil, err
	}
	ca := &x509.Certificate{
		SerialNumber:          caSerial,
		Subject:               subject(),
		NotBefore:             now,
		NotAfter:              now.AddDate(10, 0, 0),
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	caPrivKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}

	serial, err := randomSerial()
	if err != nil {
		return nil, nil, err
	}
	cert := &x509.Certificate{
		SerialNumber: serial,
		Subject:      subject(),
		IPAddresses:  ips,
		DNSNames:     []string{"localhost"},
		NotBefore:    now,
		NotAfter:     now.AddDate(10, 0, 0),
		SubjectKeyId: []byte{1, 2, 3, 4, 6},
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
	}
	certPrivKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, err
	}
	certBytes, err := x509.CreateCertificate(rand.Reader, cert, ca, &certPrivKey.PublicKey, caPrivKey)
	if err != nil {
		return nil, nil, err
	}

	certPEM, err = encodePEM("CERTIFICATE", certBytes)
	if err != nil {
		return nil, nil, err
	}
	keyPEM, err = encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(certPrivKey))
	if err != nil {
		return nil, nil, err
	}
	return certPEM, keyPEM, nil
}

func encodePEM(blockType string, der []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := pem.Encode(buf, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isMissing(file string) bool {
	_, err := os.Stat(file)
	return errors.Is(err, os.ErrNotExist)
}

func randomSerial() (*big.Int, error) {
	return rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
}
