package identity

// VoteAttempt is the per-request identity descriptor composed from the two
// independent signals: a previously issued signed token and the network
// fingerprint. It is derived fresh for every request and never persisted.
type VoteAttempt struct {
	PriorOptionID string
	HasPrior      bool
	Fingerprint   string
}

// ResolveAttempt composes both signals for one request against one poll.
func ResolveAttempt(codec TokenCodec, tokenString string, ipAddress string, userAgent string, pollID string) VoteAttempt {
	priorOptionID, hasPrior := codec.Verify(tokenString, pollID)
	return VoteAttempt{
		PriorOptionID: priorOptionID,
		HasPrior:      hasPrior,
		Fingerprint:   Fingerprint(ipAddress, userAgent, pollID),
	}
}
