// Package giftlink builds and parses the shareable claim URLs embedding a
// gift id. The URL is what the UI layer renders as a QR code.
package giftlink

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const claimPath = "claim"

// Encode returns the claim URL for the given gift id, rooted at baseURL.
func Encode(baseURL, giftId string) (string, error) {
	if len(giftId) <= 0 {
		return "", fmt.Errorf("gift id must not be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url must be absolute")
	}
	u.Path = path.Join(u.Path, claimPath, url.PathEscape(giftId))
	return u.String(), nil
}

// Decode extracts the gift id from a claim URL, ie. its trailing path
// segment.
func Decode(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid claim url: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != claimPath {
		return "", fmt.Errorf("url is not a claim link")
	}
	giftId, err := url.PathUnescape(segments[len(segments)-1])
	if err != nil || len(giftId) <= 0 {
		return "", fmt.Errorf("url does not embed a gift id")
	}
	return giftId, nil
}
