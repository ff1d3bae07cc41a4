// Package analytics provides privacy-preserving pageview analytics.
// Visitors are identified by a salted hash of IP and user agent; raw
// client identity is never stored.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// salt holds the per-installation random salt for visitor hashing,
// protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for visitor hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// VisitorID derives the anonymous visitor fingerprint for an ip/user-agent
// pair. Stable within one installation, meaningless outside it.
func VisitorID(ip, userAgent string) string {
	sum := sha256.Sum256([]byte(getSalt() + ip + userAgent))
	return hex.EncodeToString(sum[:])
}

// CleanReferrer reduces a referrer URL to its host, dropping query strings
// and paths that could carry identifying data. Same-site referrers return
// empty.
func CleanReferrer(ref, siteHost string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host == strings.TrimPrefix(strings.ToLower(siteHost), "www.") {
		return ""
	}
	return host
}
