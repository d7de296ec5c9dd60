package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendDM(userID, content string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, content)
	return nil
}

type fakeEnforcer struct {
	kicked, banned, timedOut []string
	until                    time.Time
	err                      error
}

func (f *fakeEnforcer) Kick(guildID, userID, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakeEnforcer) Ban(guildID, userID, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakeEnforcer) Timeout(guildID, userID string, until time.Time, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.timedOut = append(f.timedOut, userID)
	f.until = until
	return nil
}

type fakeOpener struct {
	reasons []string
	err     error
}

func (f *fakeOpener) Create(guildID string, subject *discordgo.User, reason, initiatorID string) (*models.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reasons = append(f.reasons, reason)
	return &models.Ticket{
		ChannelID: "chan-" + subject.ID,
		UserID:    subject.ID,
		Reason:    reason,
		CreatedAt: time.Now(),
		Status:    models.TicketOpen,
	}, nil
}

type fakeSink struct {
	entries []models.AuditEntry
}

func (f *fakeSink) Log(entry models.AuditEntry) {
	f.entries = append(f.entries, entry)
}

func testPipeline() (*Pipeline, *fakeNotifier, *fakeEnforcer, *fakeOpener, *fakeSink) {
	notifier := &fakeNotifier{}
	enforcer := &fakeEnforcer{}
	opener := &fakeOpener{}
	sink := &fakeSink{}
	return NewPipeline(NewWarningLedger(), opener, notifier, enforcer, sink), notifier, enforcer, opener, sink
}

func testRequest() Request {
	return Request{
		GuildID:   "guild1",
		GuildName: "Trapo Cloud",
		Target:    &discordgo.User{ID: "target1", Username: "someone", Discriminator: "0"},
		Moderator: &discordgo.User{ID: "mod1", Username: "staff", Discriminator: "0"},
		Reason:    "spamming invites",
	}
}

func TestWarnRecordsAndAudits(t *testing.T) {
	p, notifier, _, opener, sink := testPipeline()

	result, err := p.Execute(KindWarn, testRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Succeeded {
		t.Error("Expected the warn to succeed")
	}
	if result.WarnCount != 1 {
		t.Errorf("Expected warn count 1, got %d", result.WarnCount)
	}
	if result.Ticket == nil {
		t.Error("Expected a ticket to be opened")
	}
	if !result.Notified {
		t.Error("Expected the user to be notified")
	}
	if len(opener.reasons) != 1 || opener.reasons[0] != "User was warned: spamming invites" {
		t.Errorf("Unexpected ticket reasons: %v", opener.reasons)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("Expected 1 DM, got %d", len(notifier.sent))
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != "WARN" {
		t.Errorf("Unexpected audit entries: %+v", sink.entries)
	}
}

func TestWarnSucceedsDespiteDMFailure(t *testing.T) {
	p, notifier, _, _, sink := testPipeline()
	notifier.err = errors.New("cannot send messages to this user")

	result, err := p.Execute(KindWarn, testRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Succeeded {
		t.Error("A closed DM must not fail the warn")
	}
	if result.Notified {
		t.Error("Expected Notified to be false")
	}
	if p.Ledger.CountWarnings("target1") != 1 {
		t.Error("The warning must be recorded even when the DM fails")
	}
	if len(sink.entries) != 1 {
		t.Error("The audit entry must still be emitted")
	}
}

func TestWarnSucceedsDespiteTicketFailure(t *testing.T) {
	p, _, _, opener, _ := testPipeline()
	opener.err = errors.New("missing manage channels permission")

	result, err := p.Execute(KindWarn, testRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Succeeded {
		t.Error("A failed ticket must not fail the warn")
	}
	if result.Ticket != nil {
		t.Error("Expected no ticket on creation failure")
	}
	if result.WarnCount != 1 {
		t.Errorf("Expected warn count 1, got %d", result.WarnCount)
	}
}

func TestKickAbortsOnPlatformRejection(t *testing.T) {
	p, _, enforcer, opener, sink := testPipeline()
	enforcer.err = errors.New("missing permissions")

	result, err := p.Execute(KindKick, testRequest())
	if err == nil {
		t.Fatal("Expected an error when the platform rejects the kick")
	}
	var privErr *InsufficientPrivilegeError
	if !errors.As(err, &privErr) {
		t.Fatalf("Expected InsufficientPrivilegeError, got %T", err)
	}
	if result.Succeeded {
		t.Error("Expected Succeeded to be false")
	}
	if result.FailureReason == "" {
		t.Error("Expected a failure reason")
	}
	// The ticket opened before the rejection stays open
	if result.Ticket == nil {
		t.Error("Expected the pre-opened ticket to remain in the result")
	}
	if len(opener.reasons) != 1 {
		t.Errorf("Expected 1 ticket attempt, got %d", len(opener.reasons))
	}
	if len(sink.entries) != 0 {
		t.Error("A rejected kick must not be audited as performed")
	}
}

func TestBanOrdering(t *testing.T) {
	p, notifier, enforcer, opener, sink := testPipeline()

	result, err := p.Execute(KindBan, testRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Succeeded {
		t.Error("Expected the ban to succeed")
	}
	if len(enforcer.banned) != 1 || enforcer.banned[0] != "target1" {
		t.Errorf("Expected target1 banned, got %v", enforcer.banned)
	}
	if len(opener.reasons) != 1 || opener.reasons[0] != "User was banned: spamming invites" {
		t.Errorf("Unexpected ticket reasons: %v", opener.reasons)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("Expected the DM to go out before the ban, got %d sends", len(notifier.sent))
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != "BAN" {
		t.Errorf("Unexpected audit entries: %+v", sink.entries)
	}
}

func TestTimeoutDefaultsDuration(t *testing.T) {
	p, _, enforcer, _, sink := testPipeline()

	req := testRequest()
	req.DurationMinutes = 0
	before := time.Now()

	result, err := p.Execute(KindTimeout, req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.DurationMinutes != DefaultTimeoutMinutes {
		t.Errorf("Expected default duration %d, got %d", DefaultTimeoutMinutes, result.DurationMinutes)
	}
	if len(enforcer.timedOut) != 1 {
		t.Fatalf("Expected 1 timeout, got %d", len(enforcer.timedOut))
	}
	wantUntil := before.Add(time.Duration(DefaultTimeoutMinutes) * time.Minute)
	if enforcer.until.Before(wantUntil) {
		t.Errorf("Timeout until %v is earlier than expected %v", enforcer.until, wantUntil)
	}
	if len(sink.entries) != 1 || len(sink.entries[0].Fields) != 1 {
		t.Errorf("Expected one audit entry with a duration field, got %+v", sink.entries)
	}
}

func TestTimeoutAbortsBeforeTicket(t *testing.T) {
	p, notifier, enforcer, opener, _ := testPipeline()
	enforcer.err = errors.New("cannot timeout this member")

	result, err := p.Execute(KindTimeout, testRequest())
	if err == nil {
		t.Fatal("Expected an error when the timeout is rejected")
	}
	if result.Succeeded {
		t.Error("Expected Succeeded to be false")
	}
	if len(opener.reasons) != 0 {
		t.Error("No ticket must be opened when the timeout is rejected")
	}
	if len(notifier.sent) != 0 {
		t.Error("No DM must be sent when the timeout is rejected")
	}
}

func TestDefaultReasonApplied(t *testing.T) {
	p, _, _, _, sink := testPipeline()

	req := testRequest()
	req.Reason = ""

	result, err := p.Execute(KindWarn, req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Reason != DefaultReason {
		t.Errorf("Expected reason %q, got %q", DefaultReason, result.Reason)
	}
	if sink.entries[0].Reason != DefaultReason {
		t.Errorf("Expected audit reason %q, got %q", DefaultReason, sink.entries[0].Reason)
	}
}

func TestExecuteRejectsMissingTarget(t *testing.T) {
	p, _, _, _, _ := testPipeline()

	req := testRequest()
	req.Target = nil

	if _, err := p.Execute(KindWarn, req); err == nil {
		t.Fatal("Expected a validation error for a missing target")
	}
}

func TestParseTimeoutMinutes(t *testing.T) {
	cases := []struct {
		arg  string
		want int
	}{
		{"", DefaultTimeoutMinutes},
		{"abc", DefaultTimeoutMinutes},
		{"0", DefaultTimeoutMinutes},
		{"-5", DefaultTimeoutMinutes},
		{"45", 45},
	}
	for _, c := range cases {
		if got := ParseTimeoutMinutes(c.arg); got != c.want {
			t.Errorf("ParseTimeoutMinutes(%q) = %d, want %d", c.arg, got, c.want)
		}
	}
}
