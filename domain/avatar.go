package domain

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// AvatarURI derives a profile picture URI from a username. The derivation is
// deterministic: the same username (case-insensitive) always yields the same
// image, so repeated signups look identical.
func AvatarURI(username string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/150/150", avatarSeed(username))
}

// BannerURI derives a profile banner URI from a username.
func BannerURI(username string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s-banner/800/200", avatarSeed(username))
}

func avatarSeed(username string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(username))))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}
