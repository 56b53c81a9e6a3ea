// Package hasher derives deterministic, salted SHA-512 digests for secrets such as passwords.
//
// The digest is computed over the configured secret (salt) followed by the caller input and is
// rendered as 128 lowercase hexadecimal characters in byte order.
//
// # Usage
//
//	h, err := hasher.New(os.Getenv("HASH_SALT"))
//	if err != nil {
//		log.Fatal(err) // a missing secret is a configuration error
//	}
//
//	digest := h.Hash("p@ssw0rd")
//	ok := h.Verify("p@ssw0rd", digest)
//
// The package-level Hash function takes the secret explicitly and has no state:
//
//	digest := hasher.Hash(secret, input)
//
// # Configuration
//
//	type Config struct {
//		Secret string `env:"HASH_SALT,required,notEmpty"`
//	}
//
// Loading the config without HASH_SALT fails, which is intended to stop the application at startup.
package hasher
