package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestTimeoutSeconds(t *testing.T) {
	assert.Equal(t, int16(15), timeoutSeconds(15*time.Second))
	assert.Equal(t, int16(1), timeoutSeconds(0))
	assert.Equal(t, int16(1), timeoutSeconds(500*time.Millisecond))
	assert.Equal(t, int16(math.MaxInt16), timeoutSeconds(24*365*time.Hour))
}

func TestVerifySignature(t *testing.T) {
	sig := sign("secret", "order_1", "pay_1")

	assert.True(t, VerifySignature("secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("other-secret", "order_1", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_2", "pay_1", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_2", sig))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", ""))
	assert.False(t, VerifySignature("secret", "order_1", "pay_1", "not-hex"))
}
