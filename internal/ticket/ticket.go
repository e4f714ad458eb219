package ticket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Credential is the scannable artifact issued at booking creation, used for
// physical gate entry verification. Its ID is an anti-forgery token that is
// independent of the persisted booking id.
type Credential struct {
	ID       string // random token embedded in the payload
	Payload  string // the exact bytes encoded into the QR image
	IssuedAt time.Time
	PNG      []byte
}

// payload is the structure serialized into the QR code.
type payload struct {
	TicketID   string    `json:"ticket_id"`
	LocationID string    `json:"location_id"`
	SpaceID    string    `json:"space_id"`
	UserID     string    `json:"user_id"`
	IssuedAt   time.Time `json:"issued_at"`
}

// Encoder turns a byte payload into the scannable image format.
// It must be a pure function of its input bytes.
type Encoder func(data []byte, size int) ([]byte, error)

// QRPNGEncoder renders the payload as a QR code PNG of the given pixel size.
func QRPNGEncoder(data []byte, size int) ([]byte, error) {
	return qrcode.Encode(string(data), qrcode.Medium, size)
}

// Issuer generates gate credentials for bookings.
type Issuer interface {
	Issue(locationID, spaceID, userID string, issuedAt time.Time) (*Credential, error)
}

type issuer struct {
	encode Encoder
	size   int
}

// NewIssuer creates an Issuer rendering credentials with the given encoder
// at the given pixel size.
func NewIssuer(encode Encoder, size int) Issuer {
	return &issuer{encode: encode, size: size}
}

func (i *issuer) Issue(locationID, spaceID, userID string, issuedAt time.Time) (*Credential, error) {
	// uuid.New reads from crypto/rand; the token must not be guessable.
	token := uuid.NewString()

	raw, err := json.Marshal(payload{
		TicketID:   token,
		LocationID: locationID,
		SpaceID:    spaceID,
		UserID:     userID,
		IssuedAt:   issuedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket payload: %w", err)
	}

	img, err := i.encode(raw, i.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket: %w", err)
	}

	return &Credential{
		ID:       token,
		Payload:  string(raw),
		IssuedAt: issuedAt.UTC(),
		PNG:      img,
	}, nil
}
