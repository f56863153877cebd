package service

// QRCodeService defines the interface for friend invite QR code generation and parsing
type QRCodeService interface {
	// GenerateFriendInviteQR renders a PNG QR code pointing at the user's tag
	GenerateFriendInviteQR(uniqueTag string) ([]byte, error)

	// ParseFriendInviteQR decodes the payload of an invite code back into a tag
	ParseFriendInviteQR(qrData string) (string, error)
}
