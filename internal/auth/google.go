package auth

import (
	"net/http"

	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

const GoogleProvider = "google"

// UseGoogle registers the Google provider and keeps OAuth state in the session store.
func UseGoogle(s *Sessions, clientID string, clientSecret string, callbackURL string) {
	gothic.Store = s.Store()
	goth.UseProviders(google.New(clientID, clientSecret, callbackURL, "email", "profile"))
}

func BeginGoogle(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, gothic.GetContextWithProvider(r, GoogleProvider))
}

func CompleteGoogle(w http.ResponseWriter, r *http.Request) (goth.User, error) {
	return gothic.CompleteUserAuth(w, gothic.GetContextWithProvider(r, GoogleProvider))
}
