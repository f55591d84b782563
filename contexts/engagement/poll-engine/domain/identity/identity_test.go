package identity

import (
	"testing"
	"time"
)

func TestFingerprintIsDeterministicPerPoll(t *testing.T) {
	first := Fingerprint("203.0.113.7", "agent-a", "poll-1")
	second := Fingerprint("203.0.113.7", "agent-a", "poll-1")
	if first != second {
		t.Fatalf("same inputs must produce the same fingerprint: %s vs %s", first, second)
	}
	if first == Fingerprint("203.0.113.7", "agent-a", "poll-2") {
		t.Fatal("different polls must produce different fingerprints")
	}
	if first == Fingerprint("203.0.113.8", "agent-a", "poll-1") {
		t.Fatal("different addresses must produce different fingerprints")
	}
}

func TestFingerprintEmptyAgentFallsBack(t *testing.T) {
	if Fingerprint("203.0.113.7", "", "poll-1") != Fingerprint("203.0.113.7", "unknown", "poll-1") {
		t.Fatal("empty agent should hash as the unknown placeholder")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	codec := TokenCodec{Secret: []byte("unit-test-secret")}
	now := time.Now().UTC()

	token, err := codec.Issue("poll-1", "option-2", now, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	optionID, ok := codec.Verify(token, "poll-1")
	if !ok {
		t.Fatal("expected token to verify for its own poll")
	}
	if optionID != "option-2" {
		t.Fatalf("expected option-2, got %s", optionID)
	}
}

func TestTokenVerifyFailuresDegradeSilently(t *testing.T) {
	codec := TokenCodec{Secret: []byte("unit-test-secret")}
	now := time.Now().UTC()
	token, err := codec.Issue("poll-1", "option-2", now, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, ok := codec.Verify(token, "poll-other"); ok {
		t.Fatal("a token scoped to another poll must not verify")
	}
	if _, ok := codec.Verify(token+"tampered", "poll-1"); ok {
		t.Fatal("a tampered token must not verify")
	}
	if _, ok := codec.Verify("", "poll-1"); ok {
		t.Fatal("an empty token must not verify")
	}
	if _, ok := (TokenCodec{Secret: []byte("other-secret")}).Verify(token, "poll-1"); ok {
		t.Fatal("a token signed with a different secret must not verify")
	}

	expired, err := codec.Issue("poll-1", "option-2", now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, ok := codec.Verify(expired, "poll-1"); ok {
		t.Fatal("an expired token must not verify")
	}
}

func TestResolveAttemptComposesBothSignals(t *testing.T) {
	codec := TokenCodec{Secret: []byte("unit-test-secret")}
	now := time.Now().UTC()
	token, err := codec.Issue("poll-1", "option-1", now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	attempt := ResolveAttempt(codec, token, "203.0.113.7", "agent-a", "poll-1")
	if !attempt.HasPrior || attempt.PriorOptionID != "option-1" {
		t.Fatalf("expected prior token for option-1, got %+v", attempt)
	}
	if attempt.Fingerprint != Fingerprint("203.0.113.7", "agent-a", "poll-1") {
		t.Fatal("attempt fingerprint must match the pure function")
	}

	clean := ResolveAttempt(codec, "garbage", "203.0.113.7", "agent-a", "poll-1")
	if clean.HasPrior {
		t.Fatal("an unverifiable token must resolve as absent")
	}
}
