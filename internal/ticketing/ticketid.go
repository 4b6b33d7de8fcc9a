package ticketing

import "github.com/ethereum/go-ethereum/crypto"

// TicketTokenID derives the identifier shared by every ticket of a tier.
// Holding N tickets of a tier means holding balance N of this identifier.
func TicketTokenID(eventKey, tierKey string) string {
	return crypto.Keccak256Hash([]byte(eventKey), []byte(tierKey)).Hex()
}
