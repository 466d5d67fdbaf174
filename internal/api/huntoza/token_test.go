package huntoza

import "testing"

func TestTokenStoreSetKeepsRefreshWhenEmpty(t *testing.T) {
	s := NewTokenStore()
	s.Set("a1", "r1")

	// a refresh response may omit a rotated refresh token
	s.Set("a2", "")

	if s.Access() != "a2" {
		t.Errorf("expected new access token, got %q", s.Access())
	}
	if s.Refresh() != "r1" {
		t.Errorf("expected old refresh token kept, got %q", s.Refresh())
	}
}

func TestTokenStoreClear(t *testing.T) {
	s := NewTokenStore()
	s.Set("a1", "r1")
	s.Clear()

	if s.Access() != "" || s.Refresh() != "" {
		t.Error("expected cleared store")
	}
}

func TestTokenStoreOnChange(t *testing.T) {
	s := NewTokenStore()

	var gotAccess, gotRefresh string
	calls := 0
	s.OnChange(func(access, refresh string) {
		calls++
		gotAccess, gotRefresh = access, refresh
	})

	s.Set("a1", "r1")
	if calls != 1 || gotAccess != "a1" || gotRefresh != "r1" {
		t.Errorf("expected hook on Set, got calls=%d access=%q refresh=%q", calls, gotAccess, gotRefresh)
	}

	s.Clear()
	if calls != 2 || gotAccess != "" || gotRefresh != "" {
		t.Errorf("expected hook on Clear, got calls=%d access=%q refresh=%q", calls, gotAccess, gotRefresh)
	}
}
