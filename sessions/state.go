package sessions

import "context"

// AuthState is an immutable snapshot of who is signed in. LogIn and LogOut
// return new snapshots and never modify the receiver.
type AuthState struct {
	user *Identity
}

func NewAuthState(user *Identity) AuthState {
	return AuthState{}.LogIn(user)
}

func (s AuthState) LoggedIn() bool {
	return s.user != nil
}

// User returns a copy of the signed-in identity, or nil.
func (s AuthState) User() *Identity {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s AuthState) LogIn(user *Identity) AuthState {
	if user == nil {
		return AuthState{}
	}
	u := *user
	return AuthState{user: &u}
}

func (s AuthState) LogOut() AuthState {
	return AuthState{}
}

type contextKey string

const authStateKey contextKey = "auth_state"

func WithAuthState(ctx context.Context, state AuthState) context.Context {
	return context.WithValue(ctx, authStateKey, state)
}

// AuthStateFrom returns the snapshot stored in ctx, or an anonymous one.
func AuthStateFrom(ctx context.Context) AuthState {
	state, _ := ctx.Value(authStateKey).(AuthState)
	return state
}
