// Package qrcode renders friend invite codes.
package qrcode

import (
	"encoding/json"

	"birdy/config"
	"birdy/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256

	// InviteTypeFriend marks a payload as a friend invite.
	InviteTypeFriend = "friend_invite"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// InviteData is the JSON payload encoded in an invite code
type InviteData struct {
	Type      string `json:"type"`
	UniqueTag string `json:"unique_tag"`
}

// NewQRCodeService creates a QR code service from the qrcode config section
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := ""
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(level),
	}
}

func parseRecoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateFriendInviteQR renders a PNG invite for the given tag
func (s *qrcodeService) GenerateFriendInviteQR(uniqueTag string) ([]byte, error) {
	if uniqueTag == "" {
		return nil, errors.New("unique tag is required")
	}

	payload, err := json.Marshal(InviteData{Type: InviteTypeFriend, UniqueTag: uniqueTag})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseFriendInviteQR extracts the tag from a scanned invite payload
func (s *qrcodeService) ParseFriendInviteQR(qrData string) (string, error) {
	var data InviteData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != InviteTypeFriend {
		return "", errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.UniqueTag == "" {
		return "", errors.New("QR code carries no unique tag")
	}

	return data.UniqueTag, nil
}
