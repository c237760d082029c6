package payment

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

type CardDetails struct {
	Number string `json:"card_number"`
	Expiry string `json:"expiry_date"`
	CVV    string `json:"cvv"`
	Holder string `json:"card_holder"`
}

// Simulator stands in for a card processor. It only checks the shape of the
// card details; nothing leaves the process.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) Validate(card CardDetails) bool {
	number := strings.ReplaceAll(card.Number, " ", "")
	return len(number) == 16 && allDigits(number) &&
		expiryPattern.MatchString(card.Expiry) &&
		len(card.CVV) == 3 && allDigits(card.CVV) &&
		strings.TrimSpace(card.Holder) != ""
}

// Authorize waits out the processing delay and then validates the card.
// It only fails when ctx ends first.
func (s *Simulator) Authorize(ctx context.Context, card CardDetails) (bool, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return s.Validate(card), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
