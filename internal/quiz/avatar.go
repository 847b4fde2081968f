package quiz

import "fmt"

// TeamAvatarURL derives a stable avatar image URL for a team name.
// The same name always hashes to the same DiceBear seed, so every
// client renders the same avatar without coordination.
func TeamAvatarURL(name string) string {
	var hash int32
	for _, c := range name {
		hash = c + ((hash << 5) - hash)
	}
	if hash < 0 {
		hash = -hash
	}
	return fmt.Sprintf(
		"https://api.dicebear.com/7.x/adventurer/svg?seed=%d&backgroundColor=b6e3f4,c0aede,d1d4f9,ffd5dc,ffdfbf",
		hash,
	)
}
