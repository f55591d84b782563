package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"livepoll/contexts/engagement/poll-engine/domain/entities"
	httptransport "livepoll/contexts/engagement/poll-engine/transport/http"
)

func snapshot(pollID string, votes int) entities.PollSnapshot {
	return entities.PollSnapshot{
		Poll: entities.Poll{
			PollID:   pollID,
			Question: "Q",
			Options: []entities.Option{
				{OptionID: "option-1", Text: "A", Votes: votes},
				{OptionID: "option-2", Text: "B", Votes: 0},
			},
		},
		TotalVotes: votes,
	}
}

func TestPublishReachesTopicSubscribersOnly(t *testing.T) {
	hub := NewHub(nil, nil)

	updates, cancel := hub.Subscribe("poll-1")
	defer cancel()
	other, cancelOther := hub.Subscribe("poll-2")
	defer cancelOther()

	if err := hub.PublishPollUpdate(context.Background(), snapshot("poll-1", 3)); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case frame := <-updates:
		var payload httptransport.PollSnapshotResponse
		if err := json.Unmarshal(frame, &payload); err != nil {
			t.Fatalf("frame must be the snapshot DTO: %v", err)
		}
		if payload.PollID != "poll-1" || payload.TotalVotes != 3 {
			t.Fatalf("unexpected payload %+v", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the update")
	}

	select {
	case <-other:
		t.Fatal("a poll-2 subscriber must not see poll-1 updates")
	default:
	}
}

func TestPublishFrameMatchesResponseDTO(t *testing.T) {
	hub := NewHub(nil, nil)
	updates, cancel := hub.Subscribe("poll-1")
	defer cancel()

	snap := snapshot("poll-1", 21)
	snap.Insight = "A is ahead"
	snap.HasInsight = true
	if err := hub.PublishPollUpdate(context.Background(), snap); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	want, err := json.Marshal(httptransport.NewPollSnapshotResponse(snap))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	frame := <-updates
	if string(frame) != string(want) {
		t.Fatalf("broadcast frame must be byte-identical to the response payload\nframe: %s\nwant:  %s", frame, want)
	}
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub(nil, nil)
	_, cancel := hub.Subscribe("poll-1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Never drained: once the buffer fills, publishes must drop
		// instead of blocking.
		for i := 0; i < subscriberSlack*3; i++ {
			if err := hub.PublishPollUpdate(context.Background(), snapshot("poll-1", i)); err != nil {
				t.Errorf("publish failed: %v", err)
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestPublishSurvivesSubscriberChurn(t *testing.T) {
	// Subscribers disconnecting mid-broadcast must never crash a
	// publisher: a vote is already persisted by the time it is fanned out.
	hub := NewHub(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; ; n++ {
				select {
				case <-stop:
					return
				default:
					if err := hub.PublishPollUpdate(context.Background(), snapshot("poll-1", n)); err != nil {
						t.Errorf("publish failed: %v", err)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		_, cancel := hub.Subscribe("poll-1")
		cancel()
	}
	close(stop)
	wg.Wait()
}

func TestCancelIsIdempotentAndStopsDelivery(t *testing.T) {
	hub := NewHub(nil, nil)
	_, cancel := hub.Subscribe("poll-1")
	cancel()
	cancel()

	if err := hub.PublishPollUpdate(context.Background(), snapshot("poll-1", 1)); err != nil {
		t.Fatalf("publish after unsubscribe failed: %v", err)
	}
}
