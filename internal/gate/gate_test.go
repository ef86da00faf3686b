package gate

import (
	"context"
	"database/sql"
	"testing"

	"github.com/teledrop/teledrop/internal/db"
	"github.com/teledrop/teledrop/internal/platform"
	"github.com/teledrop/teledrop/internal/record"
)

const user = int64(5005)

func initTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func setChannels(t *testing.T, database *sql.DB, channels ...record.Channel) {
	t.Helper()
	if err := db.ReplaceChannels(database, channels); err != nil {
		t.Fatalf("ReplaceChannels failed: %v", err)
	}
}

func TestIsSatisfied_EmptySet(t *testing.T) {
	database := initTestDB(t)
	g := New(database, platform.NewFake())

	ok, err := g.IsSatisfied(context.Background(), user)
	if err != nil {
		t.Fatalf("IsSatisfied failed: %v", err)
	}
	if !ok {
		t.Error("empty channel set should satisfy any requester")
	}
}

func TestIsSatisfied_AllMember(t *testing.T) {
	database := initTestDB(t)
	fake := platform.NewFake()
	g := New(database, fake)

	setChannels(t, database,
		record.Channel{ChatID: -1, Label: "@a"},
		record.Channel{ChatID: -2, Label: "@b"},
		record.Channel{ChatID: -3, Label: "@c"},
	)
	fake.SetMembership(-1, user, platform.StatusMember)
	fake.SetMembership(-2, user, platform.StatusAdministrator)
	fake.SetMembership(-3, user, platform.StatusOwner)

	ok, err := g.IsSatisfied(context.Background(), user)
	if err != nil {
		t.Fatalf("IsSatisfied failed: %v", err)
	}
	if !ok {
		t.Error("member/administrator/owner across all channels should satisfy")
	}
}

func TestIsSatisfied_OneNonMember(t *testing.T) {
	database := initTestDB(t)
	fake := platform.NewFake()
	g := New(database, fake)

	setChannels(t, database,
		record.Channel{ChatID: -1, Label: "@a"},
		record.Channel{ChatID: -2, Label: "@b"},
	)
	fake.SetMembership(-1, user, platform.StatusMember)
	fake.SetMembership(-2, user, platform.StatusLeft)

	ok, err := g.IsSatisfied(context.Background(), user)
	if err != nil {
		t.Fatalf("IsSatisfied failed: %v", err)
	}
	if ok {
		t.Error("one non-member channel must fail the gate")
	}
}

func TestIsSatisfied_RestrictedAndBanned(t *testing.T) {
	database := initTestDB(t)
	fake := platform.NewFake()
	g := New(database, fake)

	setChannels(t, database, record.Channel{ChatID: -1, Label: "@a"})

	for _, status := range []platform.MemberStatus{platform.StatusRestricted, platform.StatusBanned} {
		fake.SetMembership(-1, user, status)
		ok, err := g.IsSatisfied(context.Background(), user)
		if err != nil {
			t.Fatalf("IsSatisfied failed: %v", err)
		}
		if ok {
			t.Errorf("status %q must fail the gate", status)
		}
	}
}

func TestIsSatisfied_UpstreamErrorFailsClosed(t *testing.T) {
	database := initTestDB(t)
	fake := platform.NewFake()
	g := New(database, fake)

	setChannels(t, database, record.Channel{ChatID: -1, Label: "@a"})
	fake.MembershipErr = context.DeadlineExceeded

	ok, err := g.IsSatisfied(context.Background(), user)
	if err != nil {
		t.Fatalf("IsSatisfied should swallow upstream errors, got: %v", err)
	}
	if ok {
		t.Error("an unreachable channel must fail the gate")
	}
}

// countingAPI wraps the fake to observe which channels get queried.
type countingAPI struct {
	*platform.Fake
	queried []int64
}

func (c *countingAPI) GetMembershipStatus(ctx context.Context, channelID, userID int64) (platform.MemberStatus, error) {
	c.queried = append(c.queried, channelID)
	return c.Fake.GetMembershipStatus(ctx, channelID, userID)
}

func TestIsSatisfied_ShortCircuits(t *testing.T) {
	database := initTestDB(t)
	api := &countingAPI{Fake: platform.NewFake()}
	g := New(database, api)

	setChannels(t, database,
		record.Channel{ChatID: -1, Label: "@a"},
		record.Channel{ChatID: -2, Label: "@b"},
		record.Channel{ChatID: -3, Label: "@c"},
	)
	api.SetMembership(-1, user, platform.StatusMember)
	api.SetMembership(-2, user, platform.StatusLeft)
	api.SetMembership(-3, user, platform.StatusMember)

	ok, err := g.IsSatisfied(context.Background(), user)
	if err != nil {
		t.Fatalf("IsSatisfied failed: %v", err)
	}
	if ok {
		t.Fatal("gate should block")
	}
	if len(api.queried) != 2 {
		t.Errorf("queried %v, want the gate to stop after the blocking channel", api.queried)
	}
}
