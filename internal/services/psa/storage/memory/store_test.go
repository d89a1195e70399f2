package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/crmrmm/console/internal/services/psa/domain"
	"github.com/crmrmm/console/internal/services/psa/storage"
	"github.com/crmrmm/console/internal/services/psa/storage/storagetest"
)

func TestStoreConformance(t *testing.T) {
	storagetest.RunConformance(t, func(*testing.T) storage.Store {
		return New()
	})
}

func TestListsReturnCopies(t *testing.T) {
	store := New()
	ctx := context.Background()
	if err := store.AppendNotification(ctx, "first"); err != nil {
		t.Fatalf("append notification: %v", err)
	}
	list, err := store.ListNotifications(ctx)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	list[0] = "mutated"

	again, err := store.ListNotifications(ctx)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if again[0] != "first" {
		t.Fatalf("notification = %q, want first", again[0])
	}
}

func TestConcurrentWrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := domain.TicketIDPrefix + "_" + string(rune('a'+i%26))
			_ = store.PutTicket(ctx, domain.Ticket{ID: id})
			_ = store.AppendPrebilling(ctx, id)
		}()
	}
	wg.Wait()

	queue, err := store.ListPrebilling(ctx)
	if err != nil {
		t.Fatalf("list prebilling: %v", err)
	}
	if len(queue) != 32 {
		t.Fatalf("prebilling length = %d, want 32", len(queue))
	}
}
