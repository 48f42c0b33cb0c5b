package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abshirdev/finledger/internal/client/api"
	"github.com/abshirdev/finledger/internal/client/auth"
	"github.com/abshirdev/finledger/internal/client/tokenstore"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and walks the login state machine: a plain
// success signs the user in, an OTP challenge continues into the code
// prompt, and an unverified account offers to resend the verification email.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.auth.Login(ctx, username, password)
	if err != nil {
		if api.IsVerificationRequired(err) {
			return a.offerResendVerification(ctx)
		}
		return err
	}

	switch {
	case res.OTPRequired:
		return a.promptOTP(ctx, res.UserID)
	case res.VerificationRequired:
		printlnFn("Your email is not verified yet.")
		return a.offerResendVerification(ctx)
	default:
		printlnFn("Signed in as", a.sess.User().Username)
		return nil
	}
}

// promptOTP loops on the code prompt until the challenge resolves, the user
// gives up with an empty line, or a non-retryable error occurs. Typing
// "resend" requests a fresh code.
func (a *App) promptOTP(ctx context.Context, userID int64) error {
	for {
		code, err := getSimpleText(a.reader, "Enter the 6-digit code (empty to cancel, 'resend' for a new one)", os.Stdout)
		if err != nil {
			return err
		}
		switch code {
		case "":
			printlnFn("Login cancelled, the code stays pending")
			return nil
		case "resend":
			if err := a.auth.ResendOTP(ctx, userID); err != nil {
				if errors.Is(err, auth.ErrResendCooldown) {
					printlnFn("Please wait before requesting another code")
					continue
				}
				return err
			}
			printlnFn("A new code was sent")
			continue
		}

		msg, err := a.auth.VerifyOTP(ctx, userID, code)
		if err != nil {
			printlnFn("Error:", err.Error())
			continue
		}
		if msg != "" {
			printlnFn(msg)
		}
		printlnFn("Signed in as", a.sess.User().Username)
		return nil
	}
}

func (a *App) offerResendVerification(ctx context.Context) error {
	challenge := a.sess.OTPPending()
	if challenge == nil {
		return nil
	}
	answer, err := getSimpleText(a.reader, "Resend the verification email? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	if err := a.auth.ResendVerification(ctx, challenge.UserID); err != nil {
		if errors.Is(err, auth.ErrResendCooldown) {
			printlnFn("Please wait before requesting another email")
			return nil
		}
		return err
	}
	printlnFn("Verification email sent, check your inbox")
	return nil
}

// LoginGoogle signs in with a Google ID token obtained out of band.
func (a *App) LoginGoogle(ctx context.Context) error {
	idToken, err := getSimpleText(a.reader, "Paste the Google ID token", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.LoginWithGoogle(ctx, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrEmailNotVerified) {
			printlnFn("Your Google account's email is not verified")
			return nil
		}
		return err
	}
	printlnFn("Signed in as", user.Username)
	return nil
}

// Register prompts for the registration form and signs the new account in.
// An unverified account is still usable; the user is reminded to verify.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	currency, err := getSimpleText(a.reader, "Preferred currency code (e.g. USD)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, api.RegisterRequest{
		Username:          username,
		Email:             email,
		Password:          password,
		PreferredCurrency: currency,
	})
	if err != nil {
		return err
	}
	printlnFn("Account created, signed in as", user.Username)
	if !user.IsVerified {
		printlnFn("Check your inbox and run 'verify' to confirm your email")
	}
	return nil
}

// VerifyEmail redeems an emailed verification token.
func (a *App) VerifyEmail(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste the verification token", os.Stdout)
	if err != nil {
		return err
	}
	msg, err := a.auth.VerifyEmail(ctx, token)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Email verified"
	}
	printlnFn(msg)
	return nil
}

// ResetPassword either requests a reset email or completes a reset with an
// emailed uid/token pair.
func (a *App) ResetPassword(ctx context.Context) error {
	mode, err := getSimpleText(a.reader, "Request a reset email (r) or complete a reset (c)?", os.Stdout)
	if err != nil {
		return err
	}

	if mode == "c" || mode == "C" {
		uid, err := getSimpleText(a.reader, "Enter the uid from the email", os.Stdout)
		if err != nil {
			return err
		}
		token, err := getSimpleText(a.reader, "Enter the reset token", os.Stdout)
		if err != nil {
			return err
		}
		password, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		if err := a.auth.ResetPasswordConfirm(ctx, uid, token, password); err != nil {
			return err
		}
		printlnFn("Password changed, you can login now")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter your account email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.auth.ResetPassword(ctx, email); err != nil {
		return err
	}
	printlnFn("If the address is registered, a reset email is on its way")
	return nil
}

// Logout drops the session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Signed out")
	return nil
}

// Whoami prints the signed-in user's profile.
func (a *App) Whoami(ctx context.Context) error {
	u := a.sess.User()
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	if u.FirstName != "" || u.LastName != "" {
		printlnFn("Name:", u.FirstName, u.LastName)
	}
	printlnFn("Verified:", u.IsVerified, " Two-factor:", u.TwoFactorEnabled)
	if u.PreferredCurrency != "" {
		printlnFn("Currency:", u.PreferredCurrency)
	}
	return nil
}

// ShowToken prints the stored access token's claims. Display only; the
// token's validity is always decided by the server.
func (a *App) ShowToken(ctx context.Context) error {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		printlnFn("No token stored")
		return nil
	}
	info, err := tokenstore.Inspect(token)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("user_id=%d issued=%s expires=%s",
		info.UserID, info.IssuedAt.Format("2006-01-02 15:04"), info.ExpiresAt.Format("2006-01-02 15:04")))
	return nil
}
