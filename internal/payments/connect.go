package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
)

// CreateExpressAccount provisions a new Express connected account for a
// photographer. The user id travels in the account metadata so that
// account.updated webhooks can be mapped back to a profile.
func (s *Service) CreateExpressAccount(email, userID string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	}
	params.AddMetadata("user_id", userID)

	account, err := s.api.Accounts.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create connect account: %w", err)
	}

	return account.ID, nil
}

// OnboardingLink returns a fresh account-onboarding link. Links are single
// use and expire, so one is generated on every request regardless of
// whether the account already existed.
func (s *Service) OnboardingLink(accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(s.baseURL + "/profile"),
		ReturnURL:  stripe.String(s.baseURL + "/profile"),
		Type:       stripe.String("account_onboarding"),
	}

	link, err := s.api.AccountLinks.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create account link: %w", err)
	}

	return link.URL, nil
}
