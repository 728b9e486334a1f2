package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"
)

type fakeNakama struct {
	runtime.NakamaModule
	authErr error
	updated map[string]string
}

func (f *fakeNakama) AuthenticateDevice(ctx context.Context, id, username string, create bool) (string, string, bool, error) {
	if f.authErr != nil {
		return "", "", false, f.authErr
	}
	return "uid-" + id, username, true, nil
}

func (f *fakeNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	if f.updated == nil {
		f.updated = make(map[string]string)
	}
	f.updated[userID] = displayName
	return nil
}

const identitiesJSON = `[
	{"device_id": "dev-1", "username": "brock", "display_name": "Brock", "difficulty": "hard", "elo": 1200},
	{"device_id": "", "user_id": "static", "username": "misty", "display_name": "Misty"}
]`

func TestRegistryLookups(t *testing.T) {
	r, err := ParseIdentities([]byte(identitiesJSON))
	if err != nil {
		t.Fatalf("ParseIdentities: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d", r.Len())
	}
	if !r.IsBot("static") || r.IsBot("uid-dev-1") {
		t.Errorf("only identities with a user id are known before provisioning")
	}
	if got := r.Pick(0); got.UserID != "bot-0" || got.Elo != 1200 {
		t.Errorf("Pick(0) = %+v", got)
	}
	if got := r.Pick(3); got.UserID != "static" {
		t.Errorf("Pick wraps around the pool, got %+v", got)
	}

	if _, err := ParseIdentities([]byte("{")); err == nil {
		t.Errorf("expected error for malformed identities")
	}
}

func TestRegistryEmptyPoolPick(t *testing.T) {
	r, _ := ParseIdentities([]byte("[]"))
	if got := r.Pick(2); got.UserID != "bot-2" || got.DisplayName == "" {
		t.Errorf("Pick = %+v", got)
	}
}

func TestProvisionBots(t *testing.T) {
	r, _ := ParseIdentities([]byte(identitiesJSON))
	nk := &fakeNakama{}

	r.ProvisionBots(context.Background(), nk, noopLogger{})

	identity, ok := r.Get("uid-dev-1")
	if !ok || identity.Difficulty != "hard" {
		t.Fatalf("provisioned bot not registered: %+v", identity)
	}
	if nk.updated["uid-dev-1"] != "Brock" {
		t.Errorf("account not updated: %v", nk.updated)
	}
	if _, ok := nk.updated["static"]; ok {
		t.Errorf("identity without device id was provisioned")
	}
}

func TestProvisionBotsAuthFailure(t *testing.T) {
	r, _ := ParseIdentities([]byte(identitiesJSON))

	r.ProvisionBots(context.Background(), &fakeNakama{authErr: errors.New("db down")}, noopLogger{})

	if r.IsBot("uid-dev-1") {
		t.Errorf("failed bot registered")
	}
}
