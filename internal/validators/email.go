package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailFormatValid accepts a bare addr-spec with a dotted domain.
func IsEmailFormatValid(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 100 {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

// IsEmailDomainValid resolves the domain; used on provider signup only.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// NormalizeEmail trims and lowercases for storage and matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
