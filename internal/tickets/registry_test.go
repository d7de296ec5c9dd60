package tickets

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

type fakeProvider struct {
	categoryErr error
	channelErr  error
	noticeErr   error

	createdChannels []string
	deletedChannels []string
	notices         int
}

func (f *fakeProvider) EnsureCategory(guildID, name string) (string, error) {
	if f.categoryErr != nil {
		return "", f.categoryErr
	}
	return "category1", nil
}

func (f *fakeProvider) CreateTicketChannel(guildID, parentID, name, subjectUserID string) (string, error) {
	if f.channelErr != nil {
		return "", f.channelErr
	}
	id := "chan-" + name
	f.createdChannels = append(f.createdChannels, name)
	return id, nil
}

func (f *fakeProvider) PostNotice(channelID string, ticket *models.Ticket, initiatorID string) error {
	if f.noticeErr != nil {
		return f.noticeErr
	}
	f.notices++
	return nil
}

func (f *fakeProvider) DeleteChannel(channelID string) error {
	f.deletedChannels = append(f.deletedChannels, channelID)
	return nil
}

// testRegistry runs scheduled deletions synchronously
func testRegistry(provider *fakeProvider) *Registry {
	r := NewRegistry(provider, "Support Tickets")
	r.schedule = func(delay time.Duration, fn func()) { fn() }
	return r
}

func subjectUser() *discordgo.User {
	return &discordgo.User{ID: "user1", Username: "Someone"}
}

func TestCreateRegistersOpenTicket(t *testing.T) {
	provider := &fakeProvider{}
	registry := testRegistry(provider)

	ticket, err := registry.Create("guild1", subjectUser(), "User was warned: spam", "mod1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ticket.Status != models.TicketOpen {
		t.Errorf("Expected status open, got %s", ticket.Status)
	}
	if registry.OpenCount() != 1 {
		t.Errorf("Expected 1 open ticket, got %d", registry.OpenCount())
	}
	if got, ok := registry.Get(ticket.ChannelID); !ok || got.UserID != "user1" {
		t.Error("Expected the ticket to be retrievable by channel ID")
	}
	if provider.notices != 1 {
		t.Errorf("Expected 1 opening notice, got %d", provider.notices)
	}
}

func TestCreateChannelNameFormat(t *testing.T) {
	provider := &fakeProvider{}
	registry := testRegistry(provider)

	if _, err := registry.Create("guild1", subjectUser(), "reason", "mod1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(provider.createdChannels) != 1 {
		t.Fatalf("Expected 1 created channel, got %d", len(provider.createdChannels))
	}
	name := provider.createdChannels[0]
	if !strings.HasPrefix(name, "ticket-someone-") {
		t.Errorf("Expected lowercased ticket-someone- prefix, got %q", name)
	}
}

func TestCreateFailsWhenChannelCreationFails(t *testing.T) {
	provider := &fakeProvider{channelErr: errors.New("missing permissions")}
	registry := testRegistry(provider)

	if _, err := registry.Create("guild1", subjectUser(), "reason", "mod1"); err == nil {
		t.Fatal("Expected an error when the channel cannot be created")
	}
	if registry.OpenCount() != 0 {
		t.Error("A failed creation must not register a ticket")
	}
}

func TestCreateSurvivesNoticeFailure(t *testing.T) {
	provider := &fakeProvider{noticeErr: errors.New("send failed")}
	registry := testRegistry(provider)

	ticket, err := registry.Create("guild1", subjectUser(), "reason", "mod1")
	if err != nil {
		t.Fatalf("A failed notice must not fail the creation: %v", err)
	}
	if _, ok := registry.Get(ticket.ChannelID); !ok {
		t.Error("Expected the ticket to be registered despite the notice failure")
	}
}

func TestCloseDeletesChannelAndUnregisters(t *testing.T) {
	provider := &fakeProvider{}
	registry := testRegistry(provider)

	ticket, _ := registry.Create("guild1", subjectUser(), "reason", "mod1")

	if !registry.Close(ticket.ChannelID) {
		t.Fatal("Expected Close to succeed for an open ticket")
	}
	if registry.OpenCount() != 0 {
		t.Errorf("Expected 0 open tickets after close, got %d", registry.OpenCount())
	}
	if len(provider.deletedChannels) != 1 || provider.deletedChannels[0] != ticket.ChannelID {
		t.Errorf("Expected the backing channel to be deleted, got %v", provider.deletedChannels)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	registry := testRegistry(provider)

	ticket, _ := registry.Create("guild1", subjectUser(), "reason", "mod1")

	registry.Close(ticket.ChannelID)
	if registry.Close(ticket.ChannelID) {
		t.Error("Expected the second Close to report false")
	}
	if len(provider.deletedChannels) != 1 {
		t.Errorf("Expected exactly 1 deletion, got %d", len(provider.deletedChannels))
	}
}

func TestCloseUnknownChannel(t *testing.T) {
	registry := testRegistry(&fakeProvider{})
	if registry.Close("never-existed") {
		t.Error("Expected Close to report false for an unknown channel")
	}
}

func TestOpenTicketsSnapshot(t *testing.T) {
	provider := &fakeProvider{}
	registry := testRegistry(provider)

	registry.Create("guild1", subjectUser(), "first", "mod1")
	registry.Create("guild1", &discordgo.User{ID: "user2", Username: "Other"}, "second", "mod1")

	snapshot := registry.OpenTickets()
	if len(snapshot) != 2 {
		t.Fatalf("Expected 2 tickets, got %d", len(snapshot))
	}
	snapshot[0].Reason = "tampered"
	for _, ticket := range registry.OpenTickets() {
		if ticket.Reason == "tampered" {
			t.Error("Mutating the snapshot must not affect the registry")
		}
	}
}
