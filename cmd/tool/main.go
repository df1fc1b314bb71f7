// Dev helper: mints access tokens so local load tests and curl sessions can
// hit protected routes without going through the full login flow.
//
//	go run ./cmd/tool -secret dev-secret -role ADMIN -count 1
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/account-service/internal/application/auth"
	"github.com/talenthub/account-service/internal/infrastructure/security"
)

func main() {
	var (
		secret = flag.String("secret", os.Getenv("JWT_SECRET"), "HMAC secret (defaults to JWT_SECRET)")
		issuer = flag.String("issuer", "account-service", "token issuer")
		role   = flag.String("role", "CANDIDATE", "role claim: CANDIDATE, RECRUITER or ADMIN")
		count  = flag.Int("count", 1, "number of tokens to mint")
		ttl    = flag.Duration("ttl", time.Hour, "token lifetime")
		out    = flag.String("out", "", "write tokens to this file instead of stdout")
	)
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "missing -secret (or JWT_SECRET)")
		os.Exit(2)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	signer := security.NewJWTSigner(*secret, *issuer)

	for i := 0; i < *count; i++ {
		uid := uuid.NewString()
		tok, err := signer.SignAccessToken(auth.TokenClaims{
			UserID: uid,
			Name:   fmt.Sprintf("loadtest-%d", i),
			Email:  fmt.Sprintf("loadtest-%d@example.com", i),
			Role:   *role,
		}, *ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sign token %d: %v\n", i, err)
			os.Exit(1)
		}
		fmt.Fprintln(w, tok)
	}
}
