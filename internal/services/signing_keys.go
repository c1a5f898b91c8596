package services

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SigningKeys holds the asymmetric keypair all tokens are signed with.
// The key material is immutable after construction; the public key can
// be handed to verifying components without exposing signing capability.
type SigningKeys struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

func NewSigningKeys(private *rsa.PrivateKey, public *rsa.PublicKey) *SigningKeys {
	return &SigningKeys{private: private, public: public}
}

func (k *SigningKeys) PublicKey() *rsa.PublicKey {
	return k.public
}

// Sign produces an RS256-signed token string for the given claims.
func (k *SigningKeys) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(k.private)
}

// Keyfunc is handed to the JWT parser; it rejects any signing method
// other than RSA before releasing the public key.
func (k *SigningKeys) Keyfunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return k.public, nil
}
