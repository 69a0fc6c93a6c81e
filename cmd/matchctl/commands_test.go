package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/meetitmo/backend/internal/config"
	authsvc "github.com/meetitmo/backend/internal/services/auth"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "matchctl", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(tokenCmd())
	return root
}

func TestTokenCommandPrintsVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	root := newRoot()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"token", "--subject", "1001"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute token: %v", err)
	}

	raw := strings.TrimSpace(out.String())
	cfg := config.Default()
	claims, err := authsvc.NewJWTManager("cli-secret", cfg.Auth.JWTAccessTTL).ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("parse printed token: %v", err)
	}
	if claims.SubjectID != 1001 {
		t.Fatalf("unexpected subject: got %d want 1001", claims.SubjectID)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("token already expired: %s", claims.ExpiresAt)
	}
}

func TestTokenCommandRequiresSubject(t *testing.T) {
	root := newRoot()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error without --subject")
	}
}
