// Package cryptoalg defines the cryptographic primitives the services depend on:
// AES-GCM sealing, application-keyed secret encryption, TOTP and password hashing.
package cryptoalg
