package service

import (
	"errors"
	"net/url"
	"strings"
)

const (
	PlanOneOff       = "one-off"
	PlanSubscription = "subscription"
)

var ErrPaymentNotConfigured = errors.New("payment form is being set up; please contact us directly to proceed")

// SplitName takes the first whitespace-separated token as the first name and
// joins the rest as the last name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// PaymentHandoffURL builds the pre-filled payment form link for a plan.
func PaymentHandoffURL(formURL, plan, fullName, email string) (string, error) {
	formURL = strings.TrimSpace(formURL)
	if formURL == "" || strings.Contains(formURL, "YOUR_") {
		return "", ErrPaymentNotConfigured
	}

	// Parameters keep the payment form's field order.
	var params []string
	add := func(key, value string) {
		params = append(params, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	if first, last := SplitName(fullName); first != "" {
		add("name[first]", first)
		if last != "" {
			add("name[last]", last)
		}
	}
	if email = strings.TrimSpace(email); email != "" {
		add("email", email)
	}
	add("paymentType", plan)

	sep := "?"
	if strings.Contains(formURL, "?") {
		sep = "&"
	}
	return formURL + sep + strings.Join(params, "&"), nil
}
