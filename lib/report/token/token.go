package accesstoken

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/pkg/errors"
)

// Токен публичной ссылки - единственный "пароль" внешнего получателя.
// 32 байта энтропии, url-safe, выдается один раз и никогда не меняется.

const tokenBytes = 32

func Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "ошибка генерации токена")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Equal сравнивает токены за постоянное время.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
