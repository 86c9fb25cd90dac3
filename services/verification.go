package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/yeremiapane/pizzeria-app/cache"
	"github.com/yeremiapane/pizzeria-app/utils"
)

// CodeTTL is how long a verification code stays valid.
const CodeTTL = 5 * time.Minute

// VerificationService hands out single-use email codes backed by a
// CodeStore and delivered over the mail collaborator.
type VerificationService struct {
	Codes  cache.CodeStore
	Mailer MailSender
}

func NewVerificationService(codes cache.CodeStore, mailer MailSender) *VerificationService {
	return &VerificationService{Codes: codes, Mailer: mailer}
}

// SendCode stores a fresh 6-digit code for email and mails it. Re-sending
// replaces any previous code.
func (v *VerificationService) SendCode(ctx context.Context, email string) error {
	return v.issue(ctx, codeKey(email), email, "Your verification code")
}

// SendResetCode issues a password-reset code. Reset codes live in their own
// keyspace so a reset code can never verify an email and vice versa.
func (v *VerificationService) SendResetCode(ctx context.Context, email string) error {
	return v.issue(ctx, resetKey(email), email, "Your password reset code")
}

// Verify consumes the stored code for email. A code can only be verified
// once; a mismatch does not consume further attempts of the right code
// because the stored value is already gone.
func (v *VerificationService) Verify(ctx context.Context, email, code string) error {
	return v.consume(ctx, codeKey(email), code)
}

// VerifyReset consumes a password-reset code.
func (v *VerificationService) VerifyReset(ctx context.Context, email, code string) error {
	return v.consume(ctx, resetKey(email), code)
}

func (v *VerificationService) issue(ctx context.Context, key, email, subject string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := v.Codes.Put(ctx, key, code, CodeTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("Your code is %s. It expires in %d minutes.",
		code, int(CodeTTL.Minutes()))
	return v.Mailer.Send(email, subject, body)
}

func (v *VerificationService) consume(ctx context.Context, key, code string) error {
	stored, ok, err := v.Codes.Consume(ctx, key)
	if err != nil {
		return err
	}
	if !ok || stored != code {
		return utils.ErrInvalidCode
	}
	return nil
}

func codeKey(email string) string {
	return "verify:" + email
}

func resetKey(email string) string {
	return "reset:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
