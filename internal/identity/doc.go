// Package identity supplies plausible browser identities (User-Agent
// strings) for outbound requests. Rotating identities reduces the chance
// that identity-based filtering blocks both fetch attempts for a domain.
package identity
