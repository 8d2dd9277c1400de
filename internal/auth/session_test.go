package auth

import "testing"

func TestNewSessionIsAnonymous(t *testing.T) {
	s := NewSession()

	pr := s.Principal()
	if pr.Authenticated {
		t.Fatal("fresh session should be anonymous")
	}
	if pr != Anonymous {
		t.Fatalf("principal = %+v, want Anonymous", pr)
	}
	if s.Token() != "" {
		t.Fatal("fresh session should carry no token")
	}
}

func TestSignIn(t *testing.T) {
	s := NewSession()
	s.SignIn(Principal{Email: "ana@example.com", DisplayName: "Ana"}, "tok123")

	pr := s.Principal()
	if !pr.Authenticated {
		t.Fatal("principal with an email should be authenticated")
	}
	if pr.Email != "ana@example.com" || pr.DisplayName != "Ana" {
		t.Fatalf("principal = %+v", pr)
	}
	if s.Token() != "tok123" {
		t.Fatalf("Token = %q", s.Token())
	}
}

func TestSignInWithoutEmailStaysUnauthenticated(t *testing.T) {
	s := NewSession()
	s.SignIn(Principal{DisplayName: "Nobody"}, "tok")

	if s.Principal().Authenticated {
		t.Fatal("a principal without an email is not authenticated")
	}
}

func TestSignOut(t *testing.T) {
	s := NewSession()
	s.SignIn(Principal{Email: "ana@example.com"}, "tok123")

	s.SignOut()

	if s.Principal() != Anonymous {
		t.Fatalf("principal = %+v, want Anonymous", s.Principal())
	}
	if s.Token() != "" {
		t.Fatal("token should be dropped on sign-out")
	}
}

func TestSubscribe(t *testing.T) {
	s := NewSession()

	var got []Principal
	unsub := s.Subscribe(func(p Principal) { got = append(got, p) })

	s.SignIn(Principal{Email: "ana@example.com"}, "tok")
	s.SignOut()

	if len(got) != 2 {
		t.Fatalf("notified %d times, want 2", len(got))
	}
	if !got[0].Authenticated || got[0].Email != "ana@example.com" {
		t.Fatalf("first notification = %+v", got[0])
	}
	if got[1] != Anonymous {
		t.Fatalf("second notification = %+v, want Anonymous", got[1])
	}

	unsub()
	s.SignIn(Principal{Email: "bo@example.com"}, "tok")
	if len(got) != 2 {
		t.Fatal("unsubscribed listener should not fire")
	}
}
