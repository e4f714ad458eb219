package ticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProducesDistinctTokens(t *testing.T) {
	issuer := NewIssuer(QRPNGEncoder, 128)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		cred, err := issuer.Issue("loc-1", "A1", "user-1", issuedAt)
		require.NoError(t, err)
		assert.NotEmpty(t, cred.ID)
		assert.False(t, seen[cred.ID], "token %s issued twice", cred.ID)
		seen[cred.ID] = true
	}
}

func TestIssuePayloadFields(t *testing.T) {
	issuer := NewIssuer(QRPNGEncoder, 128)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cred, err := issuer.Issue("loc-1", "A1", "user-1", issuedAt)
	require.NoError(t, err)

	var decoded struct {
		TicketID   string    `json:"ticket_id"`
		LocationID string    `json:"location_id"`
		SpaceID    string    `json:"space_id"`
		UserID     string    `json:"user_id"`
		IssuedAt   time.Time `json:"issued_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(cred.Payload), &decoded))

	assert.Equal(t, cred.ID, decoded.TicketID)
	assert.Equal(t, "loc-1", decoded.LocationID)
	assert.Equal(t, "A1", decoded.SpaceID)
	assert.Equal(t, "user-1", decoded.UserID)
	assert.True(t, decoded.IssuedAt.Equal(issuedAt))
	assert.Equal(t, issuedAt, cred.IssuedAt)
}

func TestQRPNGEncoderOutputDecodes(t *testing.T) {
	data, err := QRPNGEncoder([]byte(`{"ticket_id":"abc"}`), 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 256, bounds.Dx())
	assert.Equal(t, 256, bounds.Dy())
}

func TestIssuePropagatesEncoderError(t *testing.T) {
	encodeErr := errors.New("payload too large")
	issuer := NewIssuer(func(data []byte, size int) ([]byte, error) {
		return nil, encodeErr
	}, 128)

	_, err := issuer.Issue("loc-1", "A1", "user-1", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, encodeErr))
}
