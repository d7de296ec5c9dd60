package nickname

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

type fakeDirectory struct {
	members   []*discordgo.Member
	ownerID   string
	renamed   map[string]string
	renameErr map[string]error
	listErr   error
}

func newFakeDirectory(ownerID string, members ...*discordgo.Member) *fakeDirectory {
	return &fakeDirectory{
		members:   members,
		ownerID:   ownerID,
		renamed:   make(map[string]string),
		renameErr: make(map[string]error),
	}
}

func (f *fakeDirectory) Members(guildID string) ([]*discordgo.Member, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.members, nil
}

func (f *fakeDirectory) OwnerID(guildID string) (string, error) {
	return f.ownerID, nil
}

func (f *fakeDirectory) SetNickname(guildID, userID, nick string) error {
	if err := f.renameErr[userID]; err != nil {
		return err
	}
	f.renamed[userID] = nick
	return nil
}

// noLimiter does not pace anything
type noLimiter struct{}

func (noLimiter) Wait(ctx context.Context) error { return ctx.Err() }

type recordingSink struct {
	mu        sync.Mutex
	snapshots []models.MigrationRun
	finals    []models.MigrationRun
}

func (r *recordingSink) Publish(run models.MigrationRun, final bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if final {
		r.finals = append(r.finals, run)
	} else {
		r.snapshots = append(r.snapshots, run)
	}
}

type nullAudit struct {
	entries []models.AuditEntry
}

func (n *nullAudit) Log(entry models.AuditEntry) {
	n.entries = append(n.entries, entry)
}

func member(id, username, nick string, bot bool) *discordgo.Member {
	return &discordgo.Member{
		User: &discordgo.User{ID: id, Username: username, Bot: bot},
		Nick: nick,
	}
}

func testRunRequest(mode models.MigrationMode) RunRequest {
	return RunRequest{
		GuildID:      "guild1",
		GuildName:    "Trapo Cloud",
		Mode:         mode,
		ModeratorID:  "mod1",
		ModeratorTag: "staff",
	}
}

func TestRunNormalModeSkipRules(t *testing.T) {
	dir := newFakeDirectory("owner1",
		member("owner1", "boss", "", false),         // owner: skipped
		member("bot1", "beepboop", "", true),        // bot: skipped
		member("user1", "alice", "", false),         // renamed
		member("user2", "bob", "CoolBob", false),    // has nickname: skipped in normal mode
		member("user3", "carol", "TC| carol", false), // already prefixed: skipped
	)
	sink := &recordingSink{}
	auditSink := &nullAudit{}
	engine := NewEngine(dir, noLimiter{}, "TC|", sink, auditSink)

	run, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if run.Total != 5 || run.Processed != 5 {
		t.Errorf("Expected 5 total/processed, got %d/%d", run.Total, run.Processed)
	}
	if run.Updated != 1 {
		t.Errorf("Expected 1 update, got %d", run.Updated)
	}
	if run.Skipped != 4 {
		t.Errorf("Expected 4 skips, got %d", run.Skipped)
	}
	if nick := dir.renamed["user1"]; nick != "TC| alice" {
		t.Errorf("Expected nickname 'TC| alice', got %q", nick)
	}
	if _, renamed := dir.renamed["user2"]; renamed {
		t.Error("Normal mode must not overwrite existing nicknames")
	}
}

func TestRunForceModeOverwritesNicknames(t *testing.T) {
	dir := newFakeDirectory("owner1",
		member("user1", "alice", "CustomNick", false),
		member("user2", "bob", "TC| bob", false), // already prefixed stays skipped even forced
	)
	engine := NewEngine(dir, noLimiter{}, "TC|", &recordingSink{}, &nullAudit{})

	run, err := engine.Run(context.Background(), testRunRequest(models.MigrationForce))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if run.Updated != 1 {
		t.Errorf("Expected 1 update, got %d", run.Updated)
	}
	if nick := dir.renamed["user1"]; nick != "TC| alice" {
		t.Errorf("Force mode must overwrite the nickname, got %q", nick)
	}
	if _, renamed := dir.renamed["user2"]; renamed {
		t.Error("Already-prefixed members must be skipped even in force mode")
	}
}

func TestRunCountsFailures(t *testing.T) {
	dir := newFakeDirectory("owner1",
		member("user1", "alice", "", false),
		member("user2", "bob", "", false),
	)
	dir.renameErr["user1"] = errors.New("missing permissions")
	engine := NewEngine(dir, noLimiter{}, "TC|", &recordingSink{}, &nullAudit{})

	run, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal))
	if err != nil {
		t.Fatalf("A member-level failure must not abort the run: %v", err)
	}
	if run.Failed != 1 || run.Updated != 1 {
		t.Errorf("Expected 1 failed and 1 updated, got %d/%d", run.Failed, run.Updated)
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	dir := newFakeDirectory("owner1", member("user1", "alice", "", false))
	blockingLimiter := limiterFunc(func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	engine := NewEngine(dir, blockingLimiter, "TC|", &recordingSink{}, &nullAudit{})

	done := make(chan error, 1)
	go func() {
		_, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal))
		done <- err
	}()

	<-started
	if !engine.Running("guild1") {
		t.Error("Expected the guild to report an active run")
	}
	if _, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal)); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("Expected ErrRunInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if engine.Running("guild1") {
		t.Error("Expected the guard to be released after the run")
	}
}

type limiterFunc func(ctx context.Context) error

func (f limiterFunc) Wait(ctx context.Context) error { return f(ctx) }

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	members := make([]*discordgo.Member, 0, 10)
	for i := 0; i < 10; i++ {
		members = append(members, member(string(rune('a'+i)), "user", "", false))
	}
	dir := newFakeDirectory("owner1", members...)

	renames := 0
	cancelAfter := limiterFunc(func(c context.Context) error {
		renames++
		if renames == 3 {
			cancel()
		}
		return c.Err()
	})

	sink := &recordingSink{}
	engine := NewEngine(dir, cancelAfter, "TC|", sink, &nullAudit{})

	run, err := engine.Run(ctx, testRunRequest(models.MigrationNormal))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if run.Processed >= 10 {
		t.Errorf("Expected the run to stop early, processed %d", run.Processed)
	}
	if len(sink.finals) != 1 {
		t.Errorf("The final snapshot must be published even on cancellation, got %d", len(sink.finals))
	}
	if engine.Running("guild1") {
		t.Error("Expected the guard to be released after cancellation")
	}
}

func TestRunPublishesFinalSummaryAndAudit(t *testing.T) {
	dir := newFakeDirectory("owner1", member("user1", "alice", "", false))
	sink := &recordingSink{}
	auditSink := &nullAudit{}
	engine := NewEngine(dir, noLimiter{}, "TC|", sink, auditSink)

	if _, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sink.finals) != 1 {
		t.Fatalf("Expected exactly one final snapshot, got %d", len(sink.finals))
	}
	if sink.finals[0].Updated != 1 {
		t.Errorf("Final snapshot should reflect the work done: %+v", sink.finals[0])
	}
	if len(auditSink.entries) != 1 || auditSink.entries[0].Action != "BULK NICKNAME UPDATE" {
		t.Errorf("Expected one BULK NICKNAME UPDATE audit entry, got %+v", auditSink.entries)
	}
}

func TestRunMemberListFailureStillPublishesSummary(t *testing.T) {
	dir := newFakeDirectory("owner1", member("user1", "alice", "", false))
	dir.listErr = errors.New("missing guild members intent")
	sink := &recordingSink{}
	auditSink := &nullAudit{}
	engine := NewEngine(dir, noLimiter{}, "TC|", sink, auditSink)

	run, err := engine.Run(context.Background(), testRunRequest(models.MigrationNormal))
	if err == nil {
		t.Fatal("Expected the member-list failure to surface")
	}
	if run.Processed != 0 {
		t.Errorf("Expected no members processed, got %d", run.Processed)
	}
	if len(sink.finals) != 1 {
		t.Errorf("The final snapshot must be published even when the fetch fails, got %d", len(sink.finals))
	}
	if len(auditSink.entries) != 1 {
		t.Errorf("Expected the audit entry even when the fetch fails, got %d", len(auditSink.entries))
	}
	if engine.Running("guild1") {
		t.Error("Expected the guard to be released after the failure")
	}
}

func TestMultiSinkSkipsNil(t *testing.T) {
	sink := &recordingSink{}
	multi := MultiSink{nil, sink}
	multi.Publish(models.MigrationRun{GuildID: "guild1"}, true)
	if len(sink.finals) != 1 {
		t.Errorf("Expected the non-nil sink to receive the snapshot, got %d", len(sink.finals))
	}
}
